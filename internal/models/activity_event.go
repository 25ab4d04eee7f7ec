package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ActivityEvent is a raw client ping accepted on the public ingestion
// endpoint. High volume, write-only from this service's point of view.
type ActivityEvent struct {
	bun.BaseModel `bun:"table:activity_event"`
	ID            string    `bun:"id,pk" json:"id"`
	OwnerID       *int64    `bun:"owner_id" json:"owner_id,omitempty"`
	ClientIP      string    `bun:"client_ip" json:"client_ip"`
	Kind          string    `bun:"kind" json:"kind"`
	Payload       string    `bun:"payload" json:"payload"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
