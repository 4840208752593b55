package engine

import (
	"sort"
	"strconv"
	"strings"
)

// ParseDueTime parses "H:MM" or "HH:MM" into minutes since midnight.
// Anything else (missing colon, non-numeric parts, out-of-range values,
// extra sections) reports ok=false and the task gets no due time.
func ParseDueTime(input string) (mins int, ok bool) {
	s := strings.TrimSpace(input)
	h, m, found := strings.Cut(s, ":")
	if !found || strings.Contains(m, ":") {
		return 0, false
	}
	if len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// ParseAmount reads a leading integer from user input ("12", " 7 ", "15xp").
// Empty, non-numeric and negative input yields def.
func ParseAmount(input string, def int) int {
	s := strings.TrimSpace(input)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return def
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return def
	}
	return n
}

// ParseChallengeType parses user input to a ChallengeType.
// If input is empty or unrecognized, returns DefaultChallengeType.
func ParseChallengeType(input string) ChallengeType {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "weekly", "week", "w":
		return ChallengeWeekly
	case "daily", "day", "d":
		return ChallengeDaily
	default:
		return DefaultChallengeType
	}
}

// ParseRepeatDays parses a weekday list such as "mon,wed,fri", "1,3,5" or
// "weekdays". Unknown tokens are skipped.
func ParseRepeatDays(input string) []int {
	var days []int
	for _, tok := range strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		switch tok {
		case "daily", "everyday", "all":
			days = append(days, 0, 1, 2, 3, 4, 5, 6)
		case "weekdays":
			days = append(days, 1, 2, 3, 4, 5)
		case "weekends":
			days = append(days, 0, 6)
		default:
			if d, ok := weekdayNames[tok]; ok {
				days = append(days, d)
				continue
			}
			if n, err := strconv.Atoi(tok); err == nil {
				days = append(days, n)
			}
		}
	}
	return normalizeRepeatDays(days)
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0,
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
}

// normalizeRepeatDays drops out-of-range values and duplicates and sorts.
func normalizeRepeatDays(days []int) []int {
	seen := map[int]bool{}
	out := []int{}
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func normalizeText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", ErrEmptyText
	}
	return t, nil
}
