package services

import (
	"strings"
	"testing"
	"time"

	"xplife/internal/models"
)

func questRow(status models.QuestStatus, category models.QuestCategory, difficulty models.QuestDifficulty) *models.Quest {
	created := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	q := &models.Quest{
		OwnerID:    1,
		Status:     status,
		Category:   category,
		Difficulty: difficulty,
		CreatedAt:  created,
	}
	if status == models.QuestStatusCompleted {
		completed := created.Add(6 * time.Hour)
		q.CompletedAt = &completed
	}
	return q
}

func TestBuildHistoryWindowCounts(t *testing.T) {
	quests := []*models.Quest{
		questRow(models.QuestStatusCompleted, models.CategoryFitness, models.DifficultyEasy),
		questRow(models.QuestStatusCompleted, models.CategoryFitness, models.DifficultyMedium),
		questRow(models.QuestStatusSkipped, models.CategoryLearning, models.DifficultyHard),
		questRow(models.QuestStatusPending, models.CategoryLearning, models.DifficultyEasy),
	}

	window := BuildHistoryWindow(1, 30, quests)

	if window.Completed != 2 || window.Skipped != 1 || window.Pending != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", window.Completed, window.Skipped, window.Pending)
	}
	if window.Decided() != 3 {
		t.Errorf("Decided() = %d, want 3", window.Decided())
	}
	fitness := window.CompletionByCategory[models.CategoryFitness]
	if fitness == nil || fitness.Completed != 2 || fitness.Skipped != 0 {
		t.Errorf("fitness outcome = %+v, want 2 completed", fitness)
	}
	if window.MeanCompletionLatencyHours != 6 {
		t.Errorf("MeanCompletionLatencyHours = %v, want 6", window.MeanCompletionLatencyHours)
	}
}

func TestRecommendLowConfidence(t *testing.T) {
	// 4 decided quests: below the signal floor regardless of the rate.
	quests := []*models.Quest{
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyEasy),
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyEasy),
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyEasy),
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyEasy),
	}

	hint := Recommend(BuildHistoryWindow(1, 30, quests))
	if hint.Recommendation != models.RecommendationBalanced {
		t.Errorf("Recommendation = %s, want balanced with <5 decided", hint.Recommendation)
	}
	if !strings.Contains(hint.Reason, "low confidence") {
		t.Errorf("Reason = %q, want a low-confidence explanation", hint.Reason)
	}
}

func TestRecommendThresholds(t *testing.T) {
	build := func(completed, skipped int) *models.QuestHistoryWindow {
		quests := make([]*models.Quest, 0, completed+skipped)
		for i := 0; i < completed; i++ {
			quests = append(quests, questRow(models.QuestStatusCompleted, models.CategoryProductivity, models.DifficultyMedium))
		}
		for i := 0; i < skipped; i++ {
			quests = append(quests, questRow(models.QuestStatusSkipped, models.CategoryProductivity, models.DifficultyMedium))
		}
		return BuildHistoryWindow(1, 30, quests)
	}

	tests := []struct {
		name      string
		completed int
		skipped   int
		want      models.Recommendation
	}{
		{"30% completion reduces", 3, 7, models.RecommendationReduce},
		{"exactly 40% stays balanced", 4, 6, models.RecommendationBalanced},
		{"60% stays balanced", 6, 4, models.RecommendationBalanced},
		{"exactly 70% stays balanced", 7, 3, models.RecommendationBalanced},
		{"80% increases", 8, 2, models.RecommendationIncrease},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := Recommend(build(tt.completed, tt.skipped))
			if hint.Recommendation != tt.want {
				t.Errorf("Recommendation = %s, want %s", hint.Recommendation, tt.want)
			}
		})
	}
}

func TestRecommendCategoryOverrides(t *testing.T) {
	quests := []*models.Quest{
		// fitness: 0/3 completed, forces easier
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyMedium),
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyMedium),
		questRow(models.QuestStatusSkipped, models.CategoryFitness, models.DifficultyMedium),
		// learning: 3/3 completed, bumps the challenge
		questRow(models.QuestStatusCompleted, models.CategoryLearning, models.DifficultyMedium),
		questRow(models.QuestStatusCompleted, models.CategoryLearning, models.DifficultyMedium),
		questRow(models.QuestStatusCompleted, models.CategoryLearning, models.DifficultyMedium),
		// mindfulness: only 2 decided, too few for an override
		questRow(models.QuestStatusSkipped, models.CategoryMindfulness, models.DifficultyMedium),
		questRow(models.QuestStatusSkipped, models.CategoryMindfulness, models.DifficultyMedium),
	}

	hint := Recommend(BuildHistoryWindow(1, 30, quests))

	if got := hint.CategoryOverrides[models.CategoryFitness]; got != models.OverrideForceEasier {
		t.Errorf("fitness override = %s, want %s", got, models.OverrideForceEasier)
	}
	if got := hint.CategoryOverrides[models.CategoryLearning]; got != models.OverrideIncreaseChallenge {
		t.Errorf("learning override = %s, want %s", got, models.OverrideIncreaseChallenge)
	}
	if _, ok := hint.CategoryOverrides[models.CategoryMindfulness]; ok {
		t.Error("mindfulness should have no override with only 2 decided quests")
	}
}
