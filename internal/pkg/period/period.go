package period

import (
	"time"

	"xplife/internal/models"
)

// Start returns the beginning of the calendar period containing now for the
// given timeframe. Days are server-local, weeks are Monday-anchored.
func Start(tf models.Timeframe, now time.Time) time.Time {
	switch tf {
	case models.TimeframeDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case models.TimeframeWeekly:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	case models.TimeframeMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case models.TimeframeYearly:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	}
	return now
}

// Parent returns the immediate parent timeframe in the
// yearly > monthly > weekly > daily hierarchy.
func Parent(tf models.Timeframe) (models.Timeframe, bool) {
	switch tf {
	case models.TimeframeMonthly:
		return models.TimeframeYearly, true
	case models.TimeframeWeekly:
		return models.TimeframeMonthly, true
	case models.TimeframeDaily:
		return models.TimeframeWeekly, true
	}
	return "", false
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Day truncates t to midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
