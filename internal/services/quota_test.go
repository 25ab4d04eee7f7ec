package services

import (
	"testing"

	"xplife/internal/models"
)

func TestWeeklyCapConfig(t *testing.T) {
	tests := []struct {
		tier     models.PlanTier
		wantKey  string
		wanteCap int
	}{
		{models.PlanFree, CONFIG_WEEKLY_QUEST_CAP_FREE, WEEKLY_QUEST_CAP_FREE_DEFAULT},
		{models.PlanPremium, CONFIG_WEEKLY_QUEST_CAP_PREMIUM, WEEKLY_QUEST_CAP_PREMIUM_DEFAULT},
		{models.PlanLifetime, CONFIG_WEEKLY_QUEST_CAP_LIFETIME, WEEKLY_QUEST_CAP_LIFETIME_DEFAULT},
		// unknown tiers get the free plan's cap
		{models.PlanTier("mystery"), CONFIG_WEEKLY_QUEST_CAP_FREE, WEEKLY_QUEST_CAP_FREE_DEFAULT},
	}

	for _, tt := range tests {
		key, cap := WeeklyCapConfig(tt.tier)
		if key != tt.wantKey || cap != tt.wanteCap {
			t.Errorf("WeeklyCapConfig(%s) = (%s, %d), want (%s, %d)", tt.tier, key, cap, tt.wantKey, tt.wanteCap)
		}
	}
}

func TestYearlyCapConfig(t *testing.T) {
	key, cap := YearlyCapConfig(models.PlanFree)
	if key != CONFIG_YEARLY_QUEST_CAP_FREE || cap != YEARLY_QUEST_CAP_FREE_DEFAULT {
		t.Errorf("YearlyCapConfig(free) = (%s, %d)", key, cap)
	}

	_, cap = YearlyCapConfig(models.PlanLifetime)
	if cap != -1 {
		t.Errorf("lifetime yearly cap = %d, want unlimited (-1)", cap)
	}
}

func TestRewardTables(t *testing.T) {
	if CurrencyForDifficulty(models.DifficultyEasy) >= CurrencyForDifficulty(models.DifficultyEpic) {
		t.Error("currency should grow with difficulty")
	}
	if DamageForDifficulty(models.DifficultyEasy) >= DamageForDifficulty(models.DifficultyEpic) {
		t.Error("boss damage should grow with difficulty")
	}
	if CurrencyForDifficulty("bogus") != 0 || DamageForDifficulty("bogus") != 0 {
		t.Error("unknown difficulty should award nothing")
	}
}
