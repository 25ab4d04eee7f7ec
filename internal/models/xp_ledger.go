package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	XPSourceQuestCompletion = "quest_completion"
	XPSourceBossDefeat      = "boss_defeat"
)

// XPLedgerEntry is append-only. Nothing in this subsystem mutates or deletes
// rows once written.
type XPLedgerEntry struct {
	bun.BaseModel `bun:"table:xp_ledger"`
	ID            string    `bun:"id,pk" json:"id"`
	OwnerID       int64     `bun:"owner_id" json:"owner_id"`
	Amount        int       `bun:"amount" json:"amount"`
	Source        string    `bun:"source" json:"source"`
	QuestID       *string   `bun:"quest_id" json:"quest_id,omitempty"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
