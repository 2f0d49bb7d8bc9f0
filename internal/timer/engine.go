// Package timer runs the study session stopwatch. The engine lives for the
// whole process, independent of any screen, and is controlled by sending it
// named actions.
package timer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/notify"
)

// ErrNotRunning is returned by Dispatch once the engine loop has exited
var ErrNotRunning = errors.New("timer engine is not running")

type tick struct {
	gen uint64
}

// Engine is the stopwatch. Run owns the accumulated duration; every other
// method is safe to call from any goroutine.
type Engine struct {
	log      *zap.Logger
	ticker   Ticker
	notifier notify.Notifier

	actions chan Action
	ticks   chan tick
	done    chan struct{}

	snapshot  *flow.State[Snapshot]
	subjectID *flow.State[uint]

	// loop-owned
	gen  uint64
	stop func()
}

// Option configures an Engine
type Option func(*Engine)

// WithTicker replaces the cron tick source
func WithTicker(t Ticker) Option {
	return func(e *Engine) { e.ticker = t }
}

// WithNotifier sets where the running clock is shown
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLogger sets the engine logger
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an idle engine. Nothing ticks until Run is called.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:       zap.NewNop(),
		notifier:  notify.Nop{},
		actions:   make(chan Action, 8),
		ticks:     make(chan tick),
		done:      make(chan struct{}),
		snapshot:  flow.NewState(NewSnapshot(Idle, 0)),
		subjectID: flow.NewState[uint](0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.ticker == nil {
		e.ticker = NewCronTicker()
	}
	e.log = e.log.Named("timer")
	return e
}

// Run processes actions and ticks until ctx is done. It must be called once.
func (e *Engine) Run(ctx context.Context) error {
	defer func() {
		e.halt()
		if e.snapshot.Value().State != Idle {
			// the foreground session ends with the engine
			e.notifier.Dismiss()
		}
		close(e.done)
		if c, ok := e.ticker.(*CronTicker); ok {
			c.Close()
		}
	}()

	e.log.Debug("engine running")
	for {
		select {
		case <-ctx.Done():
			e.log.Debug("engine stopped", zap.Error(ctx.Err()))
			return nil
		case a := <-e.actions:
			e.apply(a)
		case t := <-e.ticks:
			if t.gen != e.gen {
				continue
			}
			e.onTick()
		}
	}
}

// Dispatch queues an action for the engine loop. Invalid transitions, like
// stopping an idle timer, are silently ignored by the loop.
func (e *Engine) Dispatch(ctx context.Context, a Action) error {
	select {
	case <-e.done:
		return ErrNotRunning
	default:
	}

	select {
	case e.actions <- a:
		return nil
	case <-e.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the last known timer value
func (e *Engine) Snapshot() Snapshot {
	return e.snapshot.Value()
}

// Subscribe implements flow.Stream. The current snapshot is delivered right
// away and then once per change. Callbacks run on the engine loop and must
// not block on Dispatch.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	return e.snapshot.Subscribe(fn)
}

// SubjectID returns the subject the running session belongs to; 0 if none
func (e *Engine) SubjectID() uint {
	return e.subjectID.Value()
}

// SetSubjectID remembers the subject of the session, whatever the timer state
func (e *Engine) SetSubjectID(id uint) {
	e.subjectID.Set(id)
}

func (e *Engine) apply(a Action) {
	prev := e.snapshot.Value()
	next, changed := prev.transition(a)
	if !changed {
		e.log.Debug("action ignored", zap.String("action", string(a)), zap.Stringer("state", prev.State))
		return
	}

	switch a {
	case ActionStart:
		if err := e.resume(); err != nil {
			e.log.Error("failed to start tick source", zap.Error(err))
			return
		}
		if prev.State == Idle {
			e.notifier.Show(next.Clock())
		}
	case ActionStop:
		e.halt()
	case ActionCancel:
		e.halt()
		e.notifier.Dismiss()
	}

	e.log.Debug("timer transition",
		zap.String("action", string(a)),
		zap.Stringer("from", prev.State),
		zap.Stringer("to", next.State),
		zap.Int64("duration", next.Duration))
	e.snapshot.Set(next)
}

func (e *Engine) onTick() {
	next, changed := e.snapshot.Value().tick()
	if !changed {
		return
	}
	e.snapshot.Set(next)
	e.notifier.SetText(next.Clock())
}

// resume attaches a fresh tick source; ticks of earlier ones are dropped
func (e *Engine) resume() error {
	e.halt()
	gen := e.gen
	stop, err := e.ticker.Start(func() {
		select {
		case e.ticks <- tick{gen: gen}:
		case <-e.done:
		}
	})
	if err != nil {
		return err
	}
	e.stop = stop
	return nil
}

func (e *Engine) halt() {
	e.gen++
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
}
