package engine

import (
	"strings"

	"gamifylife/internal/storage"
)

// TaskInput is the raw form input for a new quest.
type TaskInput struct {
	Text       string
	DueTime    string // "HH:MM"; anything else means no due time
	Penalty    string
	Reward     string
	RepeatDays []int
}

// ToggleResult describes what a toggle did. When Found is false, or the
// item had already failed, nothing changed.
type ToggleResult struct {
	ID          string
	Found       bool
	Failed      bool
	Completed   bool
	Amount      int // signed base amount applied to points
	Bonus       int
	Streak      int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	LevelDown   bool
}

// Changed reports whether the toggle mutated state.
func (r ToggleResult) Changed() bool {
	return r.Found && !r.Failed
}

// AddTask builds a quest from form input and puts it at the top of the list.
func (s *Store) AddTask(in TaskInput) (storage.Task, error) {
	text, err := normalizeText(in.Text)
	if err != nil {
		return storage.Task{}, err
	}

	var t storage.Task
	s.mutate(OpAddTask, func() bool {
		t = storage.Task{
			ID:         s.newID(),
			Text:       text,
			DueDisplay: strings.TrimSpace(in.DueTime),
			Penalty:    ParseAmount(in.Penalty, DefaultTaskPenalty),
			Reward:     ParseAmount(in.Reward, DefaultTaskReward),
			RepeatDays: normalizeRepeatDays(in.RepeatDays),
		}
		if mins, ok := ParseDueTime(in.DueTime); ok {
			t.DueTimeMins = &mins
		}
		s.state.Tasks = append([]storage.Task{t}, s.state.Tasks...)
		return true
	})
	return t, nil
}

// ToggleTask completes or un-completes a quest. Failed quests are locked.
//
// Completing awards reward with a bonus of 5 per pre-increment streak.
// Un-completing deducts reward + 5*(streak-1) and steps the streak back,
// which exactly reverses a completion from the same day.
func (s *Store) ToggleTask(id string) ToggleResult {
	res := ToggleResult{ID: id}
	s.mutate(OpToggleTask, func() bool {
		i := s.taskIndex(id)
		if i < 0 {
			return false
		}
		res.Found = true
		t := &s.state.Tasks[i]
		if t.Failed {
			res.Failed = true
			return false
		}

		res.LevelBefore = s.levelLocked()
		if !t.Completed {
			res.Amount = t.Reward
			res.Bonus = t.Streak * TaskStreakBonus
			s.updatePointsLocked(res.Amount, res.Bonus)
			today := DateKey(s.now(), s.loc)
			t.Completed = true
			t.Streak++
			t.LastCompletedDate = &today
		} else {
			prev := max(0, t.Streak-1)
			res.Amount = -(t.Reward + prev*TaskStreakBonus)
			s.updatePointsLocked(res.Amount, 0)
			t.Completed = false
			t.Streak = prev
			t.LastCompletedDate = nil
		}
		res.Completed = t.Completed
		res.Streak = t.Streak
		res.LevelAfter = s.levelLocked()
		res.LevelUp = res.LevelAfter > res.LevelBefore
		res.LevelDown = res.LevelAfter < res.LevelBefore
		return true
	})
	return res
}

// DeleteTask removes a quest unconditionally; there is no point effect.
func (s *Store) DeleteTask(id string) bool {
	removed := false
	s.mutate(OpDeleteTask, func() bool {
		i := s.taskIndex(id)
		if i < 0 {
			return false
		}
		s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
		removed = true
		return true
	})
	return removed
}

// Task returns a copy of the quest with the given id.
func (s *Store) Task(id string) (storage.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return storage.Task{}, false
	}
	return s.state.Clone().Tasks[i], true
}

func (s *Store) Tasks() []storage.Task {
	return s.Snapshot().Tasks
}

// TodayTasks returns the quests scheduled for today's weekday.
func (s *Store) TodayTasks() []storage.Task {
	weekday := Weekday(s.now(), s.loc)
	var out []storage.Task
	for _, t := range s.Tasks() {
		if t.ScheduledOn(weekday) {
			out = append(out, t)
		}
	}
	return out
}

// TodayQuests counts today's scheduled quests and how many are completed.
func (s *Store) TodayQuests() (done, total int) {
	for _, t := range s.TodayTasks() {
		total++
		if t.Completed {
			done++
		}
	}
	return done, total
}

// CompletedToday lists quests whose last completion is stamped today.
func (s *Store) CompletedToday() []storage.Task {
	today := s.Today()
	var out []storage.Task
	for _, t := range s.Tasks() {
		if t.Completed && t.LastCompletedDate != nil && *t.LastCompletedDate == today {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) taskIndex(id string) int {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
