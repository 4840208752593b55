package tui

import (
	"context"
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"gamifylife/internal/app"
	"gamifylife/internal/engine"
	"gamifylife/internal/notify"
)

// Relay forwards reminders and expiry notices into a running board. It is
// handed to app.Open before the program exists; messages sent before
// Attach are dropped.
type Relay struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewRelay() *Relay { return &Relay{} }

func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *Relay) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		// Send blocks until the event loop reads, and mutations may happen
		// inside Update.
		go p.Send(msg)
	}
}

func (r *Relay) Notify(rem notify.Reminder) { r.send(reminderMsg{r: rem}) }

func (r *Relay) Expired(res engine.ExpireResult) { r.send(expiredMsg{res: res}) }

func (r *Relay) Changed(ch engine.Change) { r.send(changedMsg{op: ch.Op}) }

// RunBoard shows the dashboard while the app's sweeps and reminders run in
// the background. It returns when the user quits or ctx is done.
func RunBoard(parent context.Context, a *app.App, relay *Relay, out io.Writer) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	m := newBoardModel(a.Store())
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx), tea.WithAltScreen())
	relay.Attach(p)
	unsubscribe := a.Store().Subscribe(relay.Changed)
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.Run(ctx); err != nil {
			a.Logger().Error("background sweeps", zap.Error(err))
		}
	}()

	_, err := p.Run()
	cancel()
	wg.Wait()
	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		return nil
	}
	return err
}
