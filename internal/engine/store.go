package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gamifylife/internal/storage"
)

// Store owns the whole game state: every collection plus the point total.
// All operations are synchronous and serialized on one mutex; subscribers
// are called after the lock is released with a snapshot of the new state,
// one change at a time and in the order the changes were made. A subscriber
// may read the store but must not mutate it.
type Store struct {
	mu sync.Mutex

	deliverMu sync.Mutex
	turn      *sync.Cond
	seq       uint64
	delivered uint64

	now       func() time.Time
	loc       *time.Location
	threshold int
	newID     func() string
	log       *zap.Logger

	state  storage.State
	popups []Popup

	subs    map[int]func(Change)
	nextSub int
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the location that defines "today" for every sweep.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLevelThreshold(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.threshold = n
		}
	}
}

func WithIDs(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		now:       time.Now,
		loc:       time.Local,
		threshold: DefaultLevelThreshold,
		newID:     uuid.NewString,
		log:       zap.NewNop(),
		subs:      map[int]func(Change){},
	}
	s.turn = sync.NewCond(&s.deliverMu)
	for _, o := range opts {
		o(s)
	}
	s.state.Normalize()
	return s
}

// Restore replaces the whole state with a copy of st. Subscribers are
// notified so the restored snapshot is persisted like any other change.
func (s *Store) Restore(st storage.State) {
	s.mutate(OpRestore, func() bool {
		s.state = st.Clone()
		s.state.Normalize()
		s.popups = nil
		return true
	})
}

// Load replaces the state without notifying subscribers. It is meant for
// start-up hydration before anything subscribes.
func (s *Store) Load(st storage.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st.Clone()
	s.state.Normalize()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() storage.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for every future change and returns a cancel func.
func (s *Store) Subscribe(fn func(Change)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// mutate runs fn under the lock and, when fn reports a change, notifies
// subscribers once the lock is released. Each change takes a sequence
// number under the lock and waits for its turn, so a slow subscriber never
// sees an older snapshot after a newer one.
func (s *Store) mutate(op Op, fn func() bool) {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return
	}
	s.seq++
	ch := Change{Seq: s.seq, Op: op, State: s.state.Clone()}
	subs := make([]func(Change), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	for s.delivered+1 != ch.Seq {
		s.turn.Wait()
	}
	defer func() {
		s.delivered = ch.Seq
		s.turn.Broadcast()
	}()

	s.log.Debug("state changed", zap.Uint64("seq", ch.Seq), zap.String("op", string(op)), zap.Int("points", ch.State.Points))
	for _, sub := range subs {
		sub(ch)
	}
}

// UpdatePoints is the only way the point total changes. The result is
// floored at zero; bonus is folded into the same total and reported
// separately on the popup.
func (s *Store) UpdatePoints(amount, bonus int) {
	s.mutate(OpUpdatePoints, func() bool {
		s.updatePointsLocked(amount, bonus)
		return true
	})
}

func (s *Store) updatePointsLocked(amount, bonus int) {
	s.state.Points = clampPoints(s.state.Points, amount, bonus)
	s.popups = append(s.popups, Popup{ID: s.newID(), Value: amount, Bonus: bonus})
}

// DrainPopups returns the queued popups and clears the queue.
func (s *Store) DrainPopups() []Popup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.popups
	s.popups = nil
	return out
}

func (s *Store) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Points
}

func (s *Store) LevelThreshold() int { return s.threshold }

func (s *Store) Level() int {
	return LevelForPoints(s.Points(), s.threshold)
}

func (s *Store) XPTowardsNext() int {
	return XPTowardsNext(s.Points(), s.threshold)
}

func (s *Store) LevelProgress() float64 {
	return LevelProgressPercent(s.Points(), s.threshold)
}

// Today returns the store's date key for the current clock reading.
func (s *Store) Today() string {
	return DateKey(s.now(), s.loc)
}

func (s *Store) Location() *time.Location { return s.loc }

func (s *Store) Now() time.Time { return s.now() }

func (s *Store) levelLocked() int {
	return LevelForPoints(s.state.Points, s.threshold)
}
