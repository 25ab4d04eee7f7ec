package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Streak tracks unbroken consecutive calendar days with at least one
// completion. LongestStreak never drops below CurrentStreak.
type Streak struct {
	bun.BaseModel    `bun:"table:streak"`
	OwnerID          int64      `bun:"owner_id,pk" json:"owner_id"`
	CurrentStreak    int        `bun:"current_streak" json:"current_streak"`
	LongestStreak    int        `bun:"longest_streak" json:"longest_streak"`
	LastActivityDate *time.Time `bun:"last_activity_date" json:"last_activity_date"`
	UpdatedAt        time.Time  `bun:"updated_at" json:"updated_at"`
}
