package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var noon = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func TestNextTrigger(t *testing.T) {
	assert.Equal(t, time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC), NextTrigger(noon, time.UTC, 18, 30))
	assert.Equal(t, time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC), NextTrigger(noon, time.UTC, 9, 0))
	// A reminder for the current minute has already passed.
	assert.Equal(t, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC), NextTrigger(noon, time.UTC, 12, 0))
}

func TestOnceFiresOnce(t *testing.T) {
	at := noon.Add(time.Hour)
	o := &once{at: at}
	assert.Equal(t, at, o.Next(noon))
	assert.True(t, o.Next(at).IsZero())
	assert.True(t, o.Next(at.Add(time.Second)).IsZero())
}

func TestScheduleAndCancel(t *testing.T) {
	s := NewScheduler(nil, WithClock(func() time.Time { return noon }), WithLocation(time.UTC))

	id, err := s.Schedule("Run", 18, 0)
	require.NoError(t, err)
	require.NotZero(t, id)

	pending := s.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Equal(t, time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC), pending[0].At)
	assert.Contains(t, pending[0].Body, `"Run"`)

	s.Cancel(id)
	assert.Empty(t, s.Pending())
	s.Cancel(id)
	s.Cancel(0)

	_, err = s.Schedule("bad", 24, 0)
	assert.ErrorIs(t, err, ErrInvalidTime)
	_, err = s.Schedule("bad", 1, -1)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestReminderJobDelivers(t *testing.T) {
	var got []Reminder
	s := NewScheduler(NotifierFunc(func(r Reminder) { got = append(got, r) }),
		WithClock(func() time.Time { return noon }), WithLocation(time.UTC))

	id, err := s.Schedule("Stretch", 13, 0)
	require.NoError(t, err)

	job := &reminderJob{s: s, id: id}
	job.Run()
	job.Run()

	require.Len(t, got, 1, "delivered once")
	assert.Equal(t, id, got[0].ID)
	assert.Empty(t, s.Pending())
}

func TestCancelledReminderIsNotDelivered(t *testing.T) {
	delivered := false
	s := NewScheduler(NotifierFunc(func(Reminder) { delivered = true }),
		WithClock(func() time.Time { return noon }), WithLocation(time.UTC))

	id, err := s.Schedule("Stretch", 13, 0)
	require.NoError(t, err)
	s.Cancel(id)

	(&reminderJob{s: s, id: id}).Run()
	assert.False(t, delivered)
}

func TestStartStopLeavesNoGoroutines(t *testing.T) {
	s := NewScheduler(nil, WithLocation(time.UTC))
	s.Start()
	_, err := s.Schedule("later", 23, 59)
	require.NoError(t, err)
	s.Stop()
}
