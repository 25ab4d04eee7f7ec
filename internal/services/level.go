package services

// XP thresholds per level, ascending. Level is always the highest entry whose
// threshold is <= total XP; it is a pure projection of total_xp.
var levelThresholds = []struct {
	Level int
	XP    int
}{
	{1, 0},
	{2, 500},
	{3, 1200},
	{4, 2100},
	{5, 3200},
	{6, 4600},
	{7, 6300},
	{8, 8300},
	{9, 10600},
	{10, 13200},
}

func LevelForXP(totalXP int) int {
	level := 1
	for _, threshold := range levelThresholds {
		if totalXP < threshold.XP {
			break
		}
		level = threshold.Level
	}
	return level
}
