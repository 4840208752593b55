package engine

import (
	"strings"

	"gamifylife/internal/storage"
)

type LogInput struct {
	Learned string
	Missed  string
	Notes   string
}

type LogResult struct {
	Entry storage.LogEntry
	Bonus int // JournalDailyBonus for the first entry of the day, else 0
}

// AddLogEntry records a journal entry at the top of the log. Only the first
// entry of a day earns JournalDailyBonus.
func (s *Store) AddLogEntry(in LogInput) (LogResult, error) {
	learned := strings.TrimSpace(in.Learned)
	missed := strings.TrimSpace(in.Missed)
	notes := strings.TrimSpace(in.Notes)
	if learned == "" && missed == "" && notes == "" {
		return LogResult{}, ErrEmptyEntry
	}

	var res LogResult
	s.mutate(OpAddLog, func() bool {
		now := s.now()
		today := DateKey(now, s.loc)
		already := false
		for _, l := range s.state.Logs {
			if l.Date == today {
				already = true
				break
			}
		}

		res.Entry = storage.LogEntry{
			ID:        s.newID(),
			Date:      today,
			Timestamp: ClockDisplay(now, s.loc),
			Learned:   learned,
			Missed:    missed,
			Notes:     notes,
		}
		s.state.Logs = append([]storage.LogEntry{res.Entry}, s.state.Logs...)
		if !already {
			res.Bonus = JournalDailyBonus
			s.updatePointsLocked(JournalDailyBonus, 0)
		}
		return true
	})
	return res, nil
}

func (s *Store) DeleteLogEntry(id string) bool {
	removed := false
	s.mutate(OpDeleteLog, func() bool {
		for i := range s.state.Logs {
			if s.state.Logs[i].ID == id {
				s.state.Logs = append(s.state.Logs[:i], s.state.Logs[i+1:]...)
				removed = true
				return true
			}
		}
		return false
	})
	return removed
}

func (s *Store) Logs() []storage.LogEntry {
	return s.Snapshot().Logs
}
