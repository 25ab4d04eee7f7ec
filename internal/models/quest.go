package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Timeframe string

const (
	TimeframeYearly  Timeframe = "yearly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeDaily   Timeframe = "daily"
)

func (tf Timeframe) Valid() bool {
	switch tf {
	case TimeframeYearly, TimeframeMonthly, TimeframeWeekly, TimeframeDaily:
		return true
	}
	return false
}

type QuestStatus string

const (
	QuestStatusPending    QuestStatus = "pending"
	QuestStatusInProgress QuestStatus = "in_progress"
	QuestStatusCompleted  QuestStatus = "completed"
	QuestStatusSkipped    QuestStatus = "skipped"
)

type QuestCategory string

const (
	CategoryFitness      QuestCategory = "fitness"
	CategoryMindfulness  QuestCategory = "mindfulness"
	CategoryLearning     QuestCategory = "learning"
	CategoryProductivity QuestCategory = "productivity"
	CategorySocial       QuestCategory = "social"
	CategoryHealth       QuestCategory = "health"
	CategoryCreativity   QuestCategory = "creativity"
)

func (c QuestCategory) Valid() bool {
	switch c {
	case CategoryFitness, CategoryMindfulness, CategoryLearning,
		CategoryProductivity, CategorySocial, CategoryHealth, CategoryCreativity:
		return true
	}
	return false
}

type QuestDifficulty string

const (
	DifficultyEasy   QuestDifficulty = "easy"
	DifficultyMedium QuestDifficulty = "medium"
	DifficultyHard   QuestDifficulty = "hard"
	DifficultyEpic   QuestDifficulty = "epic"
)

func (d QuestDifficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	}
	return false
}

// Quest rows are created by generation or direct authoring and flipped exactly
// once to completed or skipped. XPReward is fixed at creation.
type Quest struct {
	bun.BaseModel `bun:"table:quest"`
	ID            string          `bun:"id,pk" json:"id"`
	OwnerID       int64           `bun:"owner_id" json:"owner_id"`
	Title         string          `bun:"title" json:"title"`
	Description   *string         `bun:"description" json:"description,omitempty"`
	Category      QuestCategory   `bun:"category" json:"category"`
	Difficulty    QuestDifficulty `bun:"difficulty" json:"difficulty"`
	XPReward      int             `bun:"xp_reward" json:"xp_reward"`
	Status        QuestStatus     `bun:"status" json:"status"`
	Timeframe     Timeframe       `bun:"timeframe" json:"timeframe"`
	ParentQuestID *string         `bun:"parent_quest_id" json:"parent_quest_id,omitempty"`
	ProofRef      *string         `bun:"proof_ref" json:"proof_ref,omitempty"`
	CreatedAt     time.Time       `bun:"created_at,default:current_timestamp" json:"created_at"`
	CompletedAt   *time.Time      `bun:"completed_at" json:"completed_at,omitempty"`
}
