package models

import (
	"time"

	"github.com/uptrace/bun"
)

type PlanTier string

const (
	PlanFree     PlanTier = "free"
	PlanPremium  PlanTier = "premium"
	PlanLifetime PlanTier = "lifetime"
)

type UserProfile struct {
	bun.BaseModel    `bun:"table:user_profile"`
	ID               int64     `bun:"id,pk" json:"id"`
	Username         string    `bun:"username" json:"username"`
	TotalXP          int       `bun:"total_xp" json:"total_xp"`
	Level            int       `bun:"level" json:"level"`
	CurrencyBalance  int       `bun:"currency_balance" json:"currency_balance"`
	PlanTier         PlanTier  `bun:"plan_tier" json:"plan_tier"`
	PersonalityClass string    `bun:"personality_class" json:"personality_class"`
	CreatedAt        time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time `bun:"updated_at" json:"updated_at"`

	Streak    *Streak `bun:"-" json:"streak,omitempty"`
	IsNewUser bool    `bun:"-" json:"is_new_user"`
}

// UserFromAuth only use in middleware
type UserFromAuth struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
