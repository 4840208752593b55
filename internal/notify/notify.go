// Package notify schedules one-shot local reminders for quest due times.
// Reminders are advisory: nothing in the game state reads them back.
package notify

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ID identifies a pending reminder.
type ID = cron.EntryID

type Reminder struct {
	ID    ID
	Title string
	Body  string
	At    time.Time
}

// Notifier delivers a reminder when it fires.
type Notifier interface {
	Notify(r Reminder)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Reminder)

func (f NotifierFunc) Notify(r Reminder) { f(r) }

// LogNotifier writes reminders to the log.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Notify(r Reminder) {
	l := n.Log
	if l == nil {
		l = zap.NewNop()
	}
	l.Info(r.Title, zap.String("body", r.Body), zap.Time("at", r.At))
}

var ErrInvalidTime = errors.New("invalid reminder time")

// Scheduler runs reminders on a cron instance.
type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier
	now      func() time.Time
	loc      *time.Location

	mu      sync.Mutex
	pending map[ID]Reminder
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithCron shares an existing cron instance instead of creating one.
func WithCron(c *cron.Cron) Option {
	return func(s *Scheduler) {
		if c != nil {
			s.cron = c
		}
	}
}

func NewScheduler(n Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		notifier: n,
		now:      time.Now,
		loc:      time.Local,
		pending:  map[ID]Reminder{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.cron == nil {
		s.cron = cron.New(cron.WithLocation(s.loc))
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{}
	}
	return s
}

// NextTrigger returns today's hour:minute if it is still ahead of now,
// else the same time tomorrow.
func NextTrigger(now time.Time, loc *time.Location, hour, minute int) time.Time {
	local := now.In(loc)
	at := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !at.After(local) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// Schedule sets a one-shot reminder for title at hour:minute and returns its id.
func (s *Scheduler) Schedule(title string, hour, minute int) (ID, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}

	at := NextTrigger(s.now(), s.loc, hour, minute)
	r := Reminder{
		Title: "Quest Reminder!",
		Body:  fmt.Sprintf("Don't forget to complete: %q", title),
		At:    at,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := &reminderJob{s: s}
	job.id = s.cron.Schedule(&once{at: at}, job)
	r.ID = job.id
	s.pending[job.id] = r
	return job.id, nil
}

// Cancel removes a pending reminder. Unknown ids are ignored.
func (s *Scheduler) Cancel(id ID) {
	if id == 0 {
		return
	}
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
	s.cron.Remove(id)
}

// Pending lists reminders that have not fired or been cancelled.
func (s *Scheduler) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, 0, len(s.pending))
	for _, r := range s.pending {
		out = append(out, r)
	}
	return out
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the scheduler and waits for running reminders to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// reminderJob fires one reminder. id is written under s.mu before the job
// can observe it.
type reminderJob struct {
	s  *Scheduler
	id ID
}

func (j *reminderJob) Run() {
	s := j.s
	s.mu.Lock()
	id := j.id
	r, ok := s.pending[id]
	delete(s.pending, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.cron.Remove(id)
	s.notifier.Notify(r)
}

// once is a cron.Schedule that fires a single time. A zero Next time tells
// cron never to run the entry again.
type once struct {
	at time.Time
}

func (o *once) Next(t time.Time) time.Time {
	if t.Before(o.at) {
		return o.at
	}
	return time.Time{}
}
