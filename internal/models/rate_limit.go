package models

import (
	"time"

	"github.com/uptrace/bun"
)

// RateLimitWindow holds one counting window per key. Superseded windows are
// reset in place or purged by the sweeper.
type RateLimitWindow struct {
	bun.BaseModel `bun:"table:rate_limit_window"`
	Key           string    `bun:"key,pk" json:"key"`
	WindowStart   time.Time `bun:"window_start" json:"window_start"`
	WindowEnd     time.Time `bun:"window_end" json:"window_end"`
	RequestCount  int       `bun:"request_count" json:"request_count"`
}
