package services

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name string
		xp   int
		want int
	}{
		{"zero", 0, 1},
		{"below first threshold", 499, 1},
		{"exactly at threshold", 500, 2},
		{"between thresholds", 1180, 2},
		{"past third threshold", 1300, 3},
		{"top of table", 13200, 10},
		{"beyond top", 999999, 10},
		{"negative is clamped to 1", -10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForXP(tt.xp); got != tt.want {
				t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
			}
		})
	}
}

func TestLevelForXPNeverRegresses(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 14000; xp += 100 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level regressed from %d to %d at xp=%d", prev, level, xp)
		}
		prev = level
	}
}
