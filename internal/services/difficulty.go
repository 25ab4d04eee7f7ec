package services

import (
	"context"
	"fmt"
	"time"

	"xplife/internal/datastore"
	"xplife/internal/models"

	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const (
	minDecidedForSignal   = 5
	minDecidedForOverride = 3

	reduceBelowRate   = 0.40
	increaseAboveRate = 0.70

	forceEasierBelowRate      = 0.30
	overrideIncreaseAboveRate = 0.80
)

type ServiceDifficulty struct {
	container  *do.Injector
	postgresDB *bun.DB
}

func NewServiceDifficulty(container *do.Injector) (*ServiceDifficulty, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	return &ServiceDifficulty{container, postgresDB}, nil
}

// Aggregate builds the rolling history window for the owner's last windowDays
// of quests.
func (service *ServiceDifficulty) Aggregate(ctx context.Context, ownerID int64, windowDays int) (*models.QuestHistoryWindow, error) {
	since := time.Now().AddDate(0, 0, -windowDays)
	quests, err := datastore.ListQuestsCreatedSince(ctx, service.postgresDB, ownerID, since)
	if err != nil {
		return nil, err
	}

	return BuildHistoryWindow(ownerID, windowDays, quests), nil
}

func BuildHistoryWindow(ownerID int64, windowDays int, quests []*models.Quest) *models.QuestHistoryWindow {
	window := &models.QuestHistoryWindow{
		OwnerID:                ownerID,
		WindowDays:             windowDays,
		CompletionByCategory:   map[models.QuestCategory]*models.OutcomeCount{},
		CompletionByDifficulty: map[models.QuestDifficulty]*models.OutcomeCount{},
	}

	var latencySum time.Duration
	var latencyCount int

	for _, quest := range quests {
		switch quest.Status {
		case models.QuestStatusCompleted:
			window.Completed++
			bump(window, quest, true)
			if quest.CompletedAt != nil {
				latencySum += quest.CompletedAt.Sub(quest.CreatedAt)
				latencyCount++
			}
		case models.QuestStatusSkipped:
			window.Skipped++
			bump(window, quest, false)
		default:
			window.Pending++
		}
	}

	if latencyCount > 0 {
		window.MeanCompletionLatencyHours = latencySum.Hours() / float64(latencyCount)
	}

	return window
}

func bump(window *models.QuestHistoryWindow, quest *models.Quest, completed bool) {
	byCategory := window.CompletionByCategory[quest.Category]
	if byCategory == nil {
		byCategory = &models.OutcomeCount{}
		window.CompletionByCategory[quest.Category] = byCategory
	}
	byDifficulty := window.CompletionByDifficulty[quest.Difficulty]
	if byDifficulty == nil {
		byDifficulty = &models.OutcomeCount{}
		window.CompletionByDifficulty[quest.Difficulty] = byDifficulty
	}

	if completed {
		byCategory.Completed++
		byDifficulty.Completed++
	} else {
		byCategory.Skipped++
		byDifficulty.Skipped++
	}
}

// Recommend turns a history window into an advisory difficulty hint. Fewer
// than five decided quests is too weak a signal for anything but balanced.
func Recommend(window *models.QuestHistoryWindow) *models.DifficultyHint {
	decided := window.Decided()
	if decided < minDecidedForSignal {
		return &models.DifficultyHint{
			Recommendation: models.RecommendationBalanced,
			Reason:         fmt.Sprintf("low confidence: only %d decided quests in the last %d days", decided, window.WindowDays),
		}
	}

	rate := float64(window.Completed) / float64(decided)

	hint := &models.DifficultyHint{
		Recommendation: models.RecommendationBalanced,
		Reason:         fmt.Sprintf("completion rate %.2f over %d decided quests", rate, decided),
	}
	if rate < reduceBelowRate {
		hint.Recommendation = models.RecommendationReduce
	} else if rate > increaseAboveRate {
		hint.Recommendation = models.RecommendationIncrease
	}

	for category, outcome := range window.CompletionByCategory {
		categoryDecided := outcome.Decided()
		if categoryDecided < minDecidedForOverride {
			continue
		}
		categoryRate := float64(outcome.Completed) / float64(categoryDecided)
		if categoryRate < forceEasierBelowRate {
			if hint.CategoryOverrides == nil {
				hint.CategoryOverrides = map[models.QuestCategory]models.CategoryOverride{}
			}
			hint.CategoryOverrides[category] = models.OverrideForceEasier
		} else if categoryRate > overrideIncreaseAboveRate {
			if hint.CategoryOverrides == nil {
				hint.CategoryOverrides = map[models.QuestCategory]models.CategoryOverride{}
			}
			hint.CategoryOverrides[category] = models.OverrideIncreaseChallenge
		}
	}

	return hint
}
