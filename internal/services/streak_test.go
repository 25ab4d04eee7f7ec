package services

import (
	"testing"
	"time"

	"xplife/internal/models"
	"xplife/internal/pkg/period"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceStreakSameDayIsNoop(t *testing.T) {
	last := day(2024, time.June, 12)
	streak := &models.Streak{OwnerID: 1, CurrentStreak: 4, LongestStreak: 7, LastActivityDate: &last}

	changed := AdvanceStreak(streak, day(2024, time.June, 12).Add(20*time.Hour))
	if changed {
		t.Error("same-day completion should not change the streak")
	}
	if streak.CurrentStreak != 4 || streak.LongestStreak != 7 {
		t.Errorf("streak mutated on same-day completion: %+v", streak)
	}
}

func TestAdvanceStreakNextDayExtends(t *testing.T) {
	last := day(2024, time.June, 12)
	streak := &models.Streak{OwnerID: 1, CurrentStreak: 4, LongestStreak: 7, LastActivityDate: &last}

	changed := AdvanceStreak(streak, day(2024, time.June, 13).Add(5*time.Hour))
	if !changed {
		t.Fatal("next-day completion should change the streak")
	}
	if streak.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5", streak.CurrentStreak)
	}
	if streak.LongestStreak != 7 {
		t.Errorf("LongestStreak = %d, want 7", streak.LongestStreak)
	}
	if !streak.LastActivityDate.Equal(day(2024, time.June, 13)) {
		t.Errorf("LastActivityDate = %v, want June 13", streak.LastActivityDate)
	}
}

func TestAdvanceStreakGapResets(t *testing.T) {
	last := day(2024, time.June, 12)
	streak := &models.Streak{OwnerID: 1, CurrentStreak: 9, LongestStreak: 9, LastActivityDate: &last}

	AdvanceStreak(streak, day(2024, time.June, 15))
	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after a gap", streak.CurrentStreak)
	}
	if streak.LongestStreak != 9 {
		t.Errorf("LongestStreak = %d, longest must never decrease", streak.LongestStreak)
	}
}

func TestAdvanceStreakUpdatesLongest(t *testing.T) {
	last := day(2024, time.June, 12)
	streak := &models.Streak{OwnerID: 1, CurrentStreak: 7, LongestStreak: 7, LastActivityDate: &last}

	AdvanceStreak(streak, day(2024, time.June, 13))
	if streak.LongestStreak != 8 {
		t.Errorf("LongestStreak = %d, want 8", streak.LongestStreak)
	}
}

func TestNewStreak(t *testing.T) {
	now := time.Date(2024, time.June, 12, 18, 45, 0, 0, time.UTC)
	streak := NewStreak(42, now)

	if streak.OwnerID != 42 {
		t.Errorf("OwnerID = %d, want 42", streak.OwnerID)
	}
	if streak.CurrentStreak != 1 || streak.LongestStreak != 1 {
		t.Errorf("fresh streak should be 1/1, got %d/%d", streak.CurrentStreak, streak.LongestStreak)
	}
	if !streak.LastActivityDate.Equal(period.Day(now)) {
		t.Errorf("LastActivityDate = %v, want midnight of now", streak.LastActivityDate)
	}
}
