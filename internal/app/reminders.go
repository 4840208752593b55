package app

import (
	"go.uber.org/zap"

	"gamifylife/internal/engine"
	"gamifylife/internal/storage"
)

// syncReminders schedules a reminder for every open quest with a due time
// scheduled today and cancels reminders of quests that were completed,
// failed or deleted. It only acts while Run is active.
func (a *App) syncReminders(st storage.State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.remindMode {
		return
	}

	weekday := engine.Weekday(a.store.Now(), a.loc)
	want := map[string]storage.Task{}
	for _, t := range st.Tasks {
		if t.DueTimeMins == nil || t.Completed || t.Failed || !t.ScheduledOn(weekday) {
			continue
		}
		want[t.ID] = t
	}

	for taskID, rid := range a.byTask {
		if _, ok := want[taskID]; !ok {
			a.reminders.Cancel(rid)
			delete(a.byTask, taskID)
		}
	}
	for taskID, t := range want {
		if _, ok := a.byTask[taskID]; ok {
			continue
		}
		mins := *t.DueTimeMins
		rid, err := a.reminders.Schedule(t.Text, mins/60, mins%60)
		if err != nil {
			a.log.Warn("schedule reminder", zap.String("task", taskID), zap.Error(err))
			continue
		}
		a.byTask[taskID] = rid
	}
}
