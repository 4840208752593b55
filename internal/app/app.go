// Package app wires the game store to SQLite persistence, metrics, the
// periodic sweeps and quest reminders.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"gamifylife/internal/config"
	"gamifylife/internal/engine"
	"gamifylife/internal/metrics"
	"gamifylife/internal/notify"
	"gamifylife/internal/storage"
)

const saveTimeout = 5 * time.Second

type App struct {
	cfg config.Config
	log *zap.Logger
	loc *time.Location

	db      *sql.DB
	kv      *storage.KVRepo
	states  *storage.StateStore
	store   *engine.Store
	metrics *metrics.Recorder

	cron      *cron.Cron
	reminders *notify.Scheduler
	notifier  notify.Notifier
	onExpired func(engine.ExpireResult)

	mu         sync.Mutex
	remindMode bool
	byTask     map[string]notify.ID

	unsubscribe func()
}

type Option func(*App)

// WithNotifier sets where due-time reminders are delivered.
func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// WithExpiryHook is called after every sweep that failed at least one quest.
func WithExpiryHook(fn func(engine.ExpireResult)) Option {
	return func(a *App) { a.onExpired = fn }
}

// WithStoreOptions passes extra options to the engine store (clock, ids).
func WithStoreOptions(opts ...engine.Option) Option {
	return func(a *App) {
		a.store = newStore(a.cfg, a.loc, a.log, opts...)
	}
}

func newStore(cfg config.Config, loc *time.Location, log *zap.Logger, opts ...engine.Option) *engine.Store {
	base := []engine.Option{
		engine.WithLocation(loc),
		engine.WithLevelThreshold(cfg.Game.LevelThreshold),
		engine.WithLogger(log.Named("engine")),
	}
	return engine.New(append(base, opts...)...)
}

// Open loads the saved state, starts persisting every change and runs the
// start-up sweeps: resets first, then expirations, so even a one-shot
// command sees overdue quests failed and locked.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}
	path, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		log:     log,
		loc:     loc,
		db:      db,
		kv:      storage.NewKVRepo(db),
		metrics: metrics.New(cfg.Game.LevelThreshold, cfg.Metrics.Textfile),
		cron:    cron.New(cron.WithLocation(loc)),
		byTask:  map[string]notify.ID{},
	}
	a.states = storage.NewStateStore(a.kv, cfg.Storage.Key)
	a.store = newStore(cfg, loc, log)
	for _, o := range opts {
		o(a)
	}
	if a.notifier == nil {
		a.notifier = notify.LogNotifier{Log: log.Named("reminder")}
	}
	a.reminders = notify.NewScheduler(a.notifier,
		notify.WithCron(a.cron), notify.WithLocation(loc), notify.WithClock(a.store.Now))

	st, found, err := a.states.Load(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	a.store.Load(st)
	log.Debug("state loaded", zap.String("key", a.states.Key()), zap.Bool("found", found), zap.Int("points", st.Points))

	a.unsubscribe = a.store.Subscribe(a.onChange)
	a.store.CheckForResets()
	a.SweepExpirations()
	return a, nil
}

func (a *App) Store() *engine.Store         { return a.store }
func (a *App) States() *storage.StateStore  { return a.states }
func (a *App) KV() *storage.KVRepo          { return a.kv }
func (a *App) Metrics() *metrics.Recorder   { return a.metrics }
func (a *App) Reminders() *notify.Scheduler { return a.reminders }
func (a *App) Config() config.Config        { return a.cfg }
func (a *App) Logger() *zap.Logger          { return a.log }

func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// onChange persists the snapshot, updates metrics and keeps reminders in
// line with the quests. Save failures are logged and otherwise ignored: the
// in-memory state stays authoritative and the next save catches up.
func (a *App) onChange(ch engine.Change) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := a.states.Save(ctx, ch.State); err != nil {
		a.log.Warn("save state", zap.String("op", string(ch.Op)), zap.Error(err))
	}

	a.metrics.Observe(ch)
	if err := a.metrics.Flush(); err != nil {
		a.log.Warn("flush metrics", zap.Error(err))
	}

	a.syncReminders(ch.State)
}

// SweepExpirations runs one expiration sweep and reports a single notice
// no matter how many quests expired.
func (a *App) SweepExpirations() engine.ExpireResult {
	res := a.store.CheckExpirations()
	if len(res.Expired) == 0 {
		return res
	}
	a.metrics.ObserveExpired(len(res.Expired))
	if res.Penalty > 0 {
		a.log.Warn("Time's up! Penalty applied.", zap.Int("penalty", res.Penalty), zap.Int("quests", len(res.Expired)))
	}
	if a.onExpired != nil {
		a.onExpired(res)
	}
	return res
}

// Run drives the periodic sweeps and reminders until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	every := fmt.Sprintf("@every %s", a.cfg.PollInterval())
	if _, err := a.cron.AddFunc(every, func() { a.SweepExpirations() }); err != nil {
		return fmt.Errorf("schedule expiration sweep: %w", err)
	}
	if _, err := a.cron.AddFunc("@midnight", func() { a.store.CheckForResets() }); err != nil {
		return fmt.Errorf("schedule reset sweep: %w", err)
	}

	a.mu.Lock()
	a.remindMode = true
	a.mu.Unlock()
	a.syncReminders(a.store.Snapshot())

	a.SweepExpirations()
	a.cron.Start()
	a.log.Info("sweeps started", zap.Duration("poll_interval", a.cfg.PollInterval()))

	<-ctx.Done()
	<-a.cron.Stop().Done()

	a.mu.Lock()
	a.remindMode = false
	for id, rid := range a.byTask {
		a.reminders.Cancel(rid)
		delete(a.byTask, id)
	}
	a.mu.Unlock()
	return nil
}
