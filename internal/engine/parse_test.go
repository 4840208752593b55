package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDueTime(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"09:00", 540, true},
		{"9:00", 540, true},
		{" 23:59 ", 1439, true},
		{"00:00", 0, true},
		{"", 0, false},
		{"0900", 0, false},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"ab:cd", 0, false},
		{"1:2:3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDueTime(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 12, ParseAmount("12", 10))
	assert.Equal(t, 7, ParseAmount(" 7 ", 10))
	assert.Equal(t, 15, ParseAmount("15xp", 10))
	assert.Equal(t, 0, ParseAmount("0", 10))
	assert.Equal(t, 10, ParseAmount("", 10))
	assert.Equal(t, 10, ParseAmount("ten", 10))
	assert.Equal(t, 10, ParseAmount("-5", 10))
}

func TestParseRepeatDays(t *testing.T) {
	assert.Equal(t, []int{1, 3, 5}, ParseRepeatDays("mon,wed,fri"))
	assert.Equal(t, []int{0, 6}, ParseRepeatDays("weekends"))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ParseRepeatDays("weekdays tue"))
	assert.Equal(t, []int{0, 2}, ParseRepeatDays("2, 0, 9, bogus"))
	assert.Equal(t, []int{}, ParseRepeatDays(""))
}

func TestParseChallengeType(t *testing.T) {
	assert.Equal(t, ChallengeWeekly, ParseChallengeType("WEEKLY"))
	assert.Equal(t, ChallengeDaily, ParseChallengeType("daily"))
	assert.Equal(t, ChallengeDaily, ParseChallengeType("yearly"))
	assert.Equal(t, 50, ChallengeWeekly.StreakMultiplier())
	assert.Equal(t, 10, ChallengeType("bogus").StreakMultiplier())
}

func TestLevelMath(t *testing.T) {
	assert.Equal(t, 1, LevelForPoints(0, 500))
	assert.Equal(t, 1, LevelForPoints(499, 500))
	assert.Equal(t, 2, LevelForPoints(500, 500))
	assert.Equal(t, 1, LevelForPoints(-3, 500))
	assert.Equal(t, 3, LevelForPoints(1000, 0), "zero threshold falls back to default")
	assert.Equal(t, 20, XPTowardsNext(520, 500))
	assert.InDelta(t, 4.0, LevelProgressPercent(520, 500), 1e-9)
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), 1},   // Thursday
		{time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC), 53},  // Friday, belongs to 2026-W53
		{time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), 42}, // Wednesday
		{time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), 42},
		{time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), 43}, // Monday starts a week
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ISOWeek(tt.date, time.UTC), tt.date.String())
	}
}

func TestDatesUseOneLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2026-10-14 20:30 UTC is already 2026-10-15 05:30 in Tokyo.
	now := time.Date(2026, 10, 14, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-10-14", DateKey(now, time.UTC))
	assert.Equal(t, "2026-10-15", DateKey(now, tokyo))
	assert.Equal(t, 330, MinutesOfDay(now, tokyo))
	assert.Equal(t, 4, Weekday(now, tokyo))
	assert.Equal(t, "05:30", ClockDisplay(now, tokyo))
}
