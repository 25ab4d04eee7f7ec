package models

type GenerationMode string

const (
	GenerationModeManual     GenerationMode = "manual"
	GenerationModeFromParent GenerationMode = "from-parent"
	GenerationModeCascade    GenerationMode = "cascade"
)

// GenerationQuota is the quota guard verdict. A refusal with
// ReasonAlreadyGenerated is a no-op, not an error.
type GenerationQuota struct {
	Allowed      bool   `json:"allowed"`
	Reason       string `json:"reason,omitempty"`
	CurrentCount int    `json:"current_count"`
	Limit        int    `json:"limit"`
}

const (
	ReasonAlreadyGenerated   = "already-generated-this-period"
	ReasonWeeklyLimitReached = "weekly-limit-reached"
	ReasonYearlyLimitReached = "yearly-limit-reached"
)

type GenerationResult struct {
	Count         int    `json:"count"`
	AlreadyExists bool   `json:"already_exists,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	CurrentCount  int    `json:"current_count,omitempty"`
}

type TaskCountRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// GeneratorRequest is the outbound payload for the external quest generator.
type GeneratorRequest struct {
	OwnerID           int64                              `json:"ownerId"`
	Timeframe         Timeframe                          `json:"timeframe"`
	GenerationMode    GenerationMode                     `json:"generationMode"`
	ParentContext     []string                           `json:"parentContext,omitempty"`
	UserGoals         string                             `json:"userGoals,omitempty"`
	TaskCountRange    TaskCountRange                     `json:"taskCountRange"`
	DifficultyHint    Recommendation                     `json:"difficultyHint"`
	CategoryOverrides map[QuestCategory]CategoryOverride `json:"categoryOverrides,omitempty"`
	ClassProfile      string                             `json:"classProfile,omitempty"`
}

type GeneratorResponse struct {
	Quests []QuestDescriptor `json:"quests"`
}

// QuestDescriptor is one generated quest. Difficulty and XPReward fall back
// to medium/50 when missing or invalid.
type QuestDescriptor struct {
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Category    QuestCategory   `json:"category"`
	Difficulty  QuestDifficulty `json:"difficulty,omitempty"`
	XPReward    int             `json:"xp_reward,omitempty"`
}
