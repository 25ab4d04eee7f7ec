package slidingwindow

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"math/rand"
	"time"

	"xplife/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	DefaultLimit  = 30
	DefaultWindow = 60 * time.Second

	// windows older than this are eligible for the probabilistic sweep
	retention   = 24 * time.Hour
	sweepOneIn  = 10
	pgUniqueErr = "23505"
)

type Result struct {
	Allowed   bool      `json:"allowed"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// Limiter is a storage-backed sliding-window counter, one row per key.
// It fails open on storage errors: this guards capacity, not security.
type Limiter struct {
	db     *bun.DB
	limit  int
	window time.Duration
}

func New(db *bun.DB, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{db: db, limit: limit, window: window}
}

// Check counts one request against the key's window and reports the verdict.
func (l *Limiter) Check(ctx context.Context, key string) *Result {
	now := time.Now()

	res, err := l.check(ctx, key, now, true)
	if err != nil {
		log.Println("slidingwindow: fail open:", key, err)
		res = &Result{Allowed: true, Remaining: l.limit - 1, ResetAt: now.Add(l.window)}
	}

	l.maybeSweep(ctx, now)
	return res
}

func (l *Limiter) check(ctx context.Context, key string, now time.Time, retry bool) (*Result, error) {
	var window models.RateLimitWindow
	err := l.db.NewSelect().Model(&window).Where("key = ?", key).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return l.create(ctx, key, now, retry)
	}
	if err != nil {
		return nil, err
	}

	if !window.WindowEnd.After(now) {
		return l.reset(ctx, key, now, retry)
	}

	if window.RequestCount >= l.limit {
		return &Result{Allowed: false, Remaining: 0, ResetAt: window.WindowEnd}, nil
	}

	var count int
	_, err = l.db.NewUpdate().Model((*models.RateLimitWindow)(nil)).
		Set("request_count = request_count + 1").
		Where("key = ?", key).
		Where("window_end > ?", now).
		Returning("request_count").
		Exec(ctx, &count)
	if errors.Is(err, sql.ErrNoRows) {
		// window expired between the read and the increment
		return l.reset(ctx, key, now, retry)
	}
	if err != nil {
		return nil, err
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &Result{Allowed: count <= l.limit, Remaining: remaining, ResetAt: window.WindowEnd}, nil
}

func (l *Limiter) create(ctx context.Context, key string, now time.Time, retry bool) (*Result, error) {
	window := &models.RateLimitWindow{
		Key:          key,
		WindowStart:  now,
		WindowEnd:    now.Add(l.window),
		RequestCount: 1,
	}

	_, err := l.db.NewInsert().Model(window).Exec(ctx)
	if isUniqueViolation(err) && retry {
		// another request created the window first
		return l.check(ctx, key, now, false)
	}
	if err != nil {
		return nil, err
	}

	return &Result{Allowed: true, Remaining: l.limit - 1, ResetAt: window.WindowEnd}, nil
}

func (l *Limiter) reset(ctx context.Context, key string, now time.Time, retry bool) (*Result, error) {
	res, err := l.db.NewUpdate().Model((*models.RateLimitWindow)(nil)).
		Set("window_start = ?", now).
		Set("window_end = ?", now.Add(l.window)).
		Set("request_count = 1").
		Where("key = ?", key).
		Where("window_end <= ?", now).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if retry {
			// another request reset the window first
			return l.check(ctx, key, now, false)
		}
		return &Result{Allowed: true, Remaining: l.limit - 1, ResetAt: now.Add(l.window)}, nil
	}

	return &Result{Allowed: true, Remaining: l.limit - 1, ResetAt: now.Add(l.window)}, nil
}

// maybeSweep purges long-dead windows on roughly one in ten checks.
func (l *Limiter) maybeSweep(ctx context.Context, now time.Time) {
	if rand.Intn(sweepOneIn) != 0 {
		return
	}

	_, err := l.db.NewDelete().Model((*models.RateLimitWindow)(nil)).
		Where("window_end < ?", now.Add(-retention)).
		Exec(ctx)
	if err != nil {
		log.Println("slidingwindow: sweep:", err)
	}
}

// Purge removes every window older than the retention horizon. Used by the
// cron runner in addition to the probabilistic sweep.
func Purge(ctx context.Context, db *bun.DB, now time.Time) (int64, error) {
	res, err := db.NewDelete().Model((*models.RateLimitWindow)(nil)).
		Where("window_end < ?", now.Add(-retention)).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func CreateTable(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.RateLimitWindow)(nil)).IfNotExists().Exec(ctx)
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueErr
	}
	return false
}
