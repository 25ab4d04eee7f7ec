package period

import (
	"testing"
	"time"

	"xplife/internal/models"
)

func TestStart(t *testing.T) {
	// Wednesday, mid-month.
	now := time.Date(2024, time.June, 12, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name string
		tf   models.Timeframe
		want time.Time
	}{
		{"daily", models.TimeframeDaily, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)},
		{"weekly", models.TimeframeWeekly, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{"monthly", models.TimeframeMonthly, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"yearly", models.TimeframeYearly, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Start(tt.tf, now)
			if !got.Equal(tt.want) {
				t.Errorf("Start(%s) = %v, want %v", tt.tf, got, tt.want)
			}
		})
	}
}

func TestStartWeeklyOnMonday(t *testing.T) {
	monday := time.Date(2024, time.June, 10, 0, 0, 1, 0, time.UTC)
	got := Start(models.TimeframeWeekly, monday)
	want := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Start(weekly) on a Monday = %v, want %v", got, want)
	}
}

func TestStartWeeklyOnSunday(t *testing.T) {
	sunday := time.Date(2024, time.June, 16, 23, 59, 59, 0, time.UTC)
	got := Start(models.TimeframeWeekly, sunday)
	want := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Start(weekly) on a Sunday = %v, want %v", got, want)
	}
}

func TestParent(t *testing.T) {
	tests := []struct {
		tf     models.Timeframe
		want   models.Timeframe
		wantOK bool
	}{
		{models.TimeframeDaily, models.TimeframeWeekly, true},
		{models.TimeframeWeekly, models.TimeframeMonthly, true},
		{models.TimeframeMonthly, models.TimeframeYearly, true},
		{models.TimeframeYearly, "", false},
	}

	for _, tt := range tests {
		got, ok := Parent(tt.tf)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parent(%s) = (%v, %v), want (%v, %v)", tt.tf, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.June, 12, 0, 0, 1, 0, time.UTC)
	b := time.Date(2024, time.June, 12, 23, 59, 59, 0, time.UTC)
	c := time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC)

	if !SameDay(a, b) {
		t.Error("expected same day")
	}
	if SameDay(b, c) {
		t.Error("expected different days")
	}
}
