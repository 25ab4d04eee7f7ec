package services

import (
	"testing"
	"time"

	"xplife/internal/models"
)

func TestNextCascadeTarget(t *testing.T) {
	tests := []struct {
		name   string
		counts map[models.Timeframe]int
		want   models.Timeframe
		ok     bool
	}{
		{
			"yearly only fills monthly first",
			map[models.Timeframe]int{models.TimeframeYearly: 2},
			models.TimeframeMonthly, true,
		},
		{
			"monthly present fills weekly",
			map[models.Timeframe]int{models.TimeframeYearly: 2, models.TimeframeMonthly: 4},
			models.TimeframeWeekly, true,
		},
		{
			"weekly present fills daily",
			map[models.Timeframe]int{models.TimeframeYearly: 2, models.TimeframeMonthly: 4, models.TimeframeWeekly: 5},
			models.TimeframeDaily, true,
		},
		{
			"everything filled",
			map[models.Timeframe]int{models.TimeframeYearly: 1, models.TimeframeMonthly: 1, models.TimeframeWeekly: 1, models.TimeframeDaily: 1},
			"", false,
		},
		{
			"nothing to cascade from",
			map[models.Timeframe]int{},
			"", false,
		},
		{
			"gap in the middle stops the walk",
			// no monthly quests: daily cannot be filled from weekly=0 either
			map[models.Timeframe]int{models.TimeframeYearly: 1, models.TimeframeWeekly: 0, models.TimeframeDaily: 0},
			models.TimeframeMonthly, true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextCascadeTarget(tt.counts)
			if ok != tt.ok || got != tt.want {
				t.Errorf("NextCascadeTarget() = (%s, %v), want (%s, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestQuestsFromDescriptorsDefaults(t *testing.T) {
	now := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	descriptors := []models.QuestDescriptor{
		{Title: "Run 5k", Category: models.CategoryFitness, Difficulty: models.DifficultyHard, XPReward: 120},
		{Title: "Mystery", Category: "unknown-category", Difficulty: "nightmare"},
		{Title: "   "},
		{Title: ""},
	}

	quests := QuestsFromDescriptors(7, models.TimeframeDaily, nil, descriptors, now)
	if len(quests) != 2 {
		t.Fatalf("len = %d, want 2 (blank titles dropped)", len(quests))
	}

	first := quests[0]
	if first.OwnerID != 7 || first.Timeframe != models.TimeframeDaily {
		t.Errorf("owner/timeframe = %d/%s", first.OwnerID, first.Timeframe)
	}
	if first.Difficulty != models.DifficultyHard || first.XPReward != 120 {
		t.Errorf("valid descriptor fields were not kept: %+v", first)
	}
	if first.Status != models.QuestStatusPending {
		t.Errorf("Status = %s, want pending", first.Status)
	}
	if first.ID == "" {
		t.Error("quest should get a generated id")
	}

	second := quests[1]
	if second.Difficulty != models.DifficultyMedium {
		t.Errorf("invalid difficulty should fall back to medium, got %s", second.Difficulty)
	}
	if second.XPReward != DEFAULT_XP_REWARD {
		t.Errorf("missing xp should fall back to %d, got %d", DEFAULT_XP_REWARD, second.XPReward)
	}
	if second.Category != models.CategoryProductivity {
		t.Errorf("invalid category should fall back to productivity, got %s", second.Category)
	}
}

func TestQuestsFromDescriptorsParentLink(t *testing.T) {
	now := time.Now()
	parents := []string{"parent-a", "parent-b"}
	quests := QuestsFromDescriptors(7, models.TimeframeWeekly, parents, []models.QuestDescriptor{{Title: "Review goals"}}, now)

	if len(quests) != 1 {
		t.Fatalf("len = %d, want 1", len(quests))
	}
	if quests[0].ParentQuestID == nil || *quests[0].ParentQuestID != "parent-a" {
		t.Errorf("ParentQuestID = %v, want parent-a", quests[0].ParentQuestID)
	}
}
