package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gamifylife/internal/config"
	"gamifylife/internal/engine"
	"gamifylife/internal/storage"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "gl.db")
	cfg.Sweep.Timezone = "UTC"
	cfg.Sweep.PollInterval = "1s"
	require.NoError(t, cfg.Validate())
	return cfg
}

func openTestApp(t *testing.T, cfg config.Config, clock *fakeClock, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithStoreOptions(engine.WithClock(clock.Now))}, opts...)
	a, err := Open(context.Background(), cfg, zaptest.NewLogger(t), opts...)
	require.NoError(t, err)
	return a
}

var wedMorning = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func TestChangesArePersisted(t *testing.T) {
	cfg := testConfig(t)
	clock := &fakeClock{now: wedMorning}

	a := openTestApp(t, cfg, clock)
	task, err := a.Store().AddTask(engine.TaskInput{Text: "Run", Reward: "20"})
	require.NoError(t, err)
	a.Store().ToggleTask(task.ID)
	require.NoError(t, a.Close())

	b := openTestApp(t, cfg, clock)
	defer b.Close()
	assert.Equal(t, 20, b.Store().Points())
	got, ok := b.Store().Task(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.Equal(t, 1, got.Streak)
}

func TestOpenRunsResetSweep(t *testing.T) {
	cfg := testConfig(t)
	clock := &fakeClock{now: wedMorning}

	a := openTestApp(t, cfg, clock)
	task, err := a.Store().AddTask(engine.TaskInput{Text: "Stretch", RepeatDays: []int{0, 1, 2, 3, 4, 5, 6}})
	require.NoError(t, err)
	a.Store().ToggleTask(task.ID)
	require.NoError(t, a.Close())

	clock.now = wedMorning.Add(24 * time.Hour)
	b := openTestApp(t, cfg, clock)
	defer b.Close()

	got, _ := b.Store().Task(task.ID)
	assert.False(t, got.Completed)
	assert.Equal(t, 1, got.Streak)

	// The reset itself was saved.
	st, _, err := b.States().Load(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Tasks[0].Completed)
}

func TestOpenFailsOverdueQuests(t *testing.T) {
	cfg := testConfig(t)
	clock := &fakeClock{now: wedMorning}

	a := openTestApp(t, cfg, clock)
	task, err := a.Store().AddTask(engine.TaskInput{Text: "Report", DueTime: "09:00", Reward: "20", Penalty: "15"})
	require.NoError(t, err)
	a.Store().UpdatePoints(40, 0)
	require.NoError(t, a.Close())

	clock.now = time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC)
	var notices []engine.ExpireResult
	b := openTestApp(t, cfg, clock, WithExpiryHook(func(r engine.ExpireResult) { notices = append(notices, r) }))
	defer b.Close()

	got, _ := b.Store().Task(task.ID)
	assert.True(t, got.Failed)
	assert.Equal(t, 25, b.Store().Points())
	require.Len(t, notices, 1)
	assert.Equal(t, 15, notices[0].Penalty)

	res := b.Store().ToggleTask(task.ID)
	assert.True(t, res.Failed)
	assert.False(t, res.Completed)
	assert.Equal(t, 25, b.Store().Points(), "failed quests are locked")

	st, _, err := b.States().Load(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Tasks[0].Failed)
	assert.Equal(t, 25, st.Points)
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	cfg := testConfig(t)
	a := openTestApp(t, cfg, &fakeClock{now: wedMorning})
	require.NoError(t, a.db.Close())

	assert.NotPanics(t, func() {
		a.Store().UpdatePoints(10, 0)
	})
	assert.Equal(t, 10, a.Store().Points(), "in-memory state stays authoritative")
}

func TestSweepExpirationsHook(t *testing.T) {
	cfg := testConfig(t)
	clock := &fakeClock{now: wedMorning}

	var notices []engine.ExpireResult
	a := openTestApp(t, cfg, clock, WithExpiryHook(func(r engine.ExpireResult) { notices = append(notices, r) }))
	defer a.Close()

	a.Store().UpdatePoints(50, 0)
	_, err := a.Store().AddTask(engine.TaskInput{Text: "a", DueTime: "07:30", Penalty: "5"})
	require.NoError(t, err)
	_, err = a.Store().AddTask(engine.TaskInput{Text: "b", DueTime: "07:45", Penalty: "10"})
	require.NoError(t, err)

	res := a.SweepExpirations()
	assert.Len(t, res.Expired, 2)
	require.Len(t, notices, 1, "one notice per sweep")
	assert.Equal(t, 15, notices[0].Penalty)
	assert.Equal(t, 35, a.Store().Points())

	a.SweepExpirations()
	assert.Len(t, notices, 1)
}

func TestRunTracksReminders(t *testing.T) {
	cfg := testConfig(t)
	clock := &fakeClock{now: wedMorning}
	a := openTestApp(t, cfg, clock)
	defer a.Close()

	due, err := a.Store().AddTask(engine.TaskInput{Text: "Standup", DueTime: "09:00"})
	require.NoError(t, err)
	_, err = a.Store().AddTask(engine.TaskInput{Text: "Sunday chores", DueTime: "09:00", RepeatDays: []int{0}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool { return len(a.Reminders().Pending()) == 1 }, 2*time.Second, 10*time.Millisecond)

	added, err := a.Store().AddTask(engine.TaskInput{Text: "Lunch", DueTime: "12:00"})
	require.NoError(t, err)
	assert.Len(t, a.Reminders().Pending(), 2)

	a.Store().ToggleTask(due.ID)
	a.Store().DeleteTask(added.ID)
	assert.Empty(t, a.Reminders().Pending())

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestStateKeyFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Key = "@custom"
	a := openTestApp(t, cfg, &fakeClock{now: wedMorning})
	defer a.Close()

	a.Store().UpdatePoints(3, 0)
	raw, found, err := a.KV().Get(context.Background(), "@custom")
	require.NoError(t, err)
	require.True(t, found)
	assert.Contains(t, raw, `"points":3`)

	_, found, err = a.KV().Get(context.Background(), storage.DefaultStateKey)
	require.NoError(t, err)
	assert.False(t, found)
}
