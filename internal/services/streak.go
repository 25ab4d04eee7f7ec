package services

import (
	"time"

	"xplife/internal/models"
	"xplife/internal/pkg/period"
)

// AdvanceStreak applies one completion on the given day. Same day as the last
// activity is a no-op; the day after extends the run; anything else restarts
// it. Returns false when nothing changed.
func AdvanceStreak(streak *models.Streak, now time.Time) bool {
	today := period.Day(now)

	if streak.LastActivityDate != nil {
		last := period.Day(*streak.LastActivityDate)
		if last.Equal(today) {
			return false
		}
		if last.AddDate(0, 0, 1).Equal(today) {
			streak.CurrentStreak++
		} else {
			streak.CurrentStreak = 1
		}
	} else {
		streak.CurrentStreak = 1
	}

	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastActivityDate = &today
	return true
}

// NewStreak is the row for a first-ever completion.
func NewStreak(ownerID int64, now time.Time) *models.Streak {
	today := period.Day(now)
	return &models.Streak{
		OwnerID:          ownerID,
		CurrentStreak:    1,
		LongestStreak:    1,
		LastActivityDate: &today,
		UpdatedAt:        now,
	}
}
