package models

type Recommendation string

const (
	RecommendationReduce   Recommendation = "reduce_difficulty"
	RecommendationBalanced Recommendation = "balanced"
	RecommendationIncrease Recommendation = "increase_challenge"
)

type CategoryOverride string

const (
	OverrideForceEasier       CategoryOverride = "force_easier"
	OverrideIncreaseChallenge CategoryOverride = "increase_challenge"
)

// QuestHistoryWindow is a derived aggregation over a trailing slice of the
// owner's quests. It is never persisted.
type QuestHistoryWindow struct {
	OwnerID    int64 `json:"owner_id"`
	WindowDays int   `json:"window_days"`

	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`

	CompletionByCategory   map[QuestCategory]*OutcomeCount   `json:"completion_by_category"`
	CompletionByDifficulty map[QuestDifficulty]*OutcomeCount `json:"completion_by_difficulty"`

	// Mean completed_at - created_at across completed quests, in hours.
	MeanCompletionLatencyHours float64 `json:"mean_completion_latency_hours"`
}

type OutcomeCount struct {
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
}

func (c *OutcomeCount) Decided() int {
	return c.Completed + c.Skipped
}

func (w *QuestHistoryWindow) Decided() int {
	return w.Completed + w.Skipped
}

// DifficultyHint is advisory only. It rides along on the generation request
// and never mutates stored data.
type DifficultyHint struct {
	Recommendation    Recommendation                     `json:"recommendation"`
	Reason            string                             `json:"reason"`
	CategoryOverrides map[QuestCategory]CategoryOverride `json:"category_overrides,omitempty"`
}
