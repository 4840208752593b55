package engine

// DefaultLevelThreshold is the XP needed per level.
const DefaultLevelThreshold = 500

// LevelForPoints returns floor(points/threshold)+1.
func LevelForPoints(points, threshold int) int {
	if threshold <= 0 {
		threshold = DefaultLevelThreshold
	}
	if points < 0 {
		points = 0
	}
	return points/threshold + 1
}

// XPTowardsNext returns the XP earned inside the current level.
func XPTowardsNext(points, threshold int) int {
	if threshold <= 0 {
		threshold = DefaultLevelThreshold
	}
	if points < 0 {
		return 0
	}
	return points % threshold
}

// LevelProgressPercent returns how far into the current level points is, 0..100.
func LevelProgressPercent(points, threshold int) float64 {
	if threshold <= 0 {
		threshold = DefaultLevelThreshold
	}
	return float64(XPTowardsNext(points, threshold)) / float64(threshold) * 100
}

// clampPoints applies a delta and floors the total at zero.
func clampPoints(total, amount, bonus int) int {
	next := total + amount + bonus
	if next < 0 {
		return 0
	}
	return next
}
