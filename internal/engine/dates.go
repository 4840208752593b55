package engine

import "time"

// DateKeyLayout is the calendar-day identifier used for lastCompletedDate
// and journal dates.
const DateKeyLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD civil date of now in loc.
func DateKey(now time.Time, loc *time.Location) string {
	return now.In(locOrLocal(loc)).Format(DateKeyLayout)
}

// ISOWeek returns the ISO-8601 week number of the civil date of now in loc.
// Week 1 is the week holding the year's first Thursday. The ISO year is
// dropped: week 1 of 2027 and week 1 of 2026 compare equal.
func ISOWeek(now time.Time, loc *time.Location) int {
	_, week := now.In(locOrLocal(loc)).ISOWeek()
	return week
}

// MinutesOfDay returns hour*60+minute of now in loc.
func MinutesOfDay(now time.Time, loc *time.Location) int {
	t := now.In(locOrLocal(loc))
	return t.Hour()*60 + t.Minute()
}

// Weekday returns 0 (Sunday) through 6 (Saturday) of now in loc.
func Weekday(now time.Time, loc *time.Location) int {
	return int(now.In(locOrLocal(loc)).Weekday())
}

// ClockDisplay formats now as HH:MM in loc.
func ClockDisplay(now time.Time, loc *time.Location) string {
	return now.In(locOrLocal(loc)).Format("15:04")
}

func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
