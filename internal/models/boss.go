package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BossStatus string

const (
	BossStatusActive   BossStatus = "active"
	BossStatusDefeated BossStatus = "defeated"
	BossStatusExpired  BossStatus = "expired"
)

// BossEncounter is a shared damage sink. A partial unique index keeps at most
// one active row system-wide.
type BossEncounter struct {
	bun.BaseModel  `bun:"table:boss_encounter"`
	ID             string     `bun:"id,pk" json:"id"`
	Name           string     `bun:"name" json:"name"`
	MaxHP          int        `bun:"max_hp" json:"max_hp"`
	CurrentHP      int        `bun:"current_hp" json:"current_hp"`
	Status         BossStatus `bun:"status" json:"status"`
	XPReward       int        `bun:"xp_reward" json:"xp_reward"`
	CurrencyReward int        `bun:"currency_reward" json:"currency_reward"`
	CreatedAt      time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	EndsAt         *time.Time `bun:"ends_at" json:"ends_at,omitempty"`
	DefeatedAt     *time.Time `bun:"defeated_at" json:"defeated_at,omitempty"`
}

// One row per (boss, owner), upserted with atomic increments.
type BossContribution struct {
	bun.BaseModel   `bun:"table:boss_contribution"`
	BossID          string    `bun:"boss_id,pk" json:"boss_id"`
	OwnerID         int64     `bun:"owner_id,pk" json:"owner_id"`
	DamageDealt     int       `bun:"damage_dealt" json:"damage_dealt"`
	QuestsCompleted int       `bun:"quests_completed" json:"quests_completed"`
	UpdatedAt       time.Time `bun:"updated_at" json:"updated_at"`
}
