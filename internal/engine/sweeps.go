package engine

import (
	"go.uber.org/zap"
)

// ExpireResult summarizes one expiration sweep.
type ExpireResult struct {
	Expired []string // ids of quests that failed in this sweep
	Penalty int      // total points deducted, as one mutation
}

// CheckForResets clears the day's completion on repeating quests and the
// period's completion on challenges once their stamp is stale. Streaks are
// kept. It returns how many items were reset; a second run with no date
// change resets nothing.
func (s *Store) CheckForResets() int {
	n := 0
	s.mutate(OpResets, func() bool {
		now := s.now()
		today := DateKey(now, s.loc)
		week := ISOWeek(now, s.loc)

		for i := range s.state.Tasks {
			t := &s.state.Tasks[i]
			if !t.IsRepeating() || !t.Completed {
				continue
			}
			if t.LastCompletedDate != nil && *t.LastCompletedDate == today {
				continue
			}
			t.Completed = false
			t.Failed = false
			n++
		}

		for i := range s.state.Challenges {
			c := &s.state.Challenges[i]
			if !c.Completed {
				continue
			}
			switch ChallengeType(c.Type) {
			case ChallengeDaily:
				if c.LastCompletedDate != nil && *c.LastCompletedDate == today {
					continue
				}
			case ChallengeWeekly:
				if c.LastCompletedWeek != nil && *c.LastCompletedWeek == week {
					continue
				}
			default:
				continue
			}
			c.Completed = false
			n++
		}
		return n > 0
	})
	if n > 0 {
		s.log.Info("daily reset", zap.Int("items", n))
	}
	return n
}

// CheckExpirations fails every open quest scheduled for today whose due
// time has passed, resets its streak, and deducts the summed penalties as a
// single point mutation.
func (s *Store) CheckExpirations() ExpireResult {
	var res ExpireResult
	s.mutate(OpExpirations, func() bool {
		now := s.now()
		mins := MinutesOfDay(now, s.loc)
		weekday := Weekday(now, s.loc)

		for i := range s.state.Tasks {
			t := &s.state.Tasks[i]
			if t.Completed || t.Failed || t.DueTimeMins == nil || !t.ScheduledOn(weekday) {
				continue
			}
			if mins <= *t.DueTimeMins {
				continue
			}
			t.Failed = true
			t.Streak = 0
			res.Penalty += t.Penalty
			res.Expired = append(res.Expired, t.ID)
		}
		if res.Penalty != 0 {
			s.updatePointsLocked(-res.Penalty, 0)
		}
		return len(res.Expired) > 0
	})
	if len(res.Expired) > 0 {
		s.log.Info("quests expired", zap.Int("count", len(res.Expired)), zap.Int("penalty", res.Penalty))
	}
	return res
}
