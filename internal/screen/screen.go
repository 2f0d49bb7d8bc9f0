// Package screen holds one state aggregator per screen. Each aggregator
// combines its local transient state with repository streams into a single
// state value, handles UI events, and publishes one-shot effects.
//
// State subscribers are called while the combined state is locked: they must
// hand values off (to a channel, a render loop) and never call OnEvent
// synchronously.
package screen

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/repository"
	"github.com/balkashynov/studysmart/internal/timer"
)

// Effect is a one-shot UI effect delivered through a screen's Events stream
type Effect interface {
	effect()
}

// ShowMessage asks the UI to show a transient message. Long is set for
// failures that deserve more time on screen.
type ShowMessage struct {
	Text string
	Long bool
}

// NavigateBack asks the UI to leave the current screen
type NavigateBack struct{}

func (ShowMessage) effect()  {}
func (NavigateBack) effect() {}

// Timer is the part of the timer engine the session screen drives
type Timer interface {
	flow.Stream[timer.Snapshot]
	Snapshot() timer.Snapshot
	Dispatch(ctx context.Context, a timer.Action) error
	SubjectID() uint
	SetSubjectID(id uint)
}

// Deps are the collaborators every screen is built from
type Deps struct {
	Repos repository.Repositories
	Timer Timer
	Log   *zap.Logger
	Now   func() time.Time
}

func (d Deps) logger(name string) *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log.Named(name)
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// aggregator is the machinery shared by all screens
type aggregator[S any] struct {
	log      *zap.Logger
	local    *flow.State[S]
	combined *flow.Combined[S]
	events   *flow.Bus[Effect]
}

func newAggregator[S any](log *zap.Logger, initial S) *aggregator[S] {
	local := flow.NewState(initial)
	return &aggregator[S]{
		log:      log,
		local:    local,
		combined: flow.NewCombined[S](local),
		events:   flow.NewBus[Effect](),
	}
}

// State streams the combined screen state. Nothing is delivered until every
// repository input has produced a value.
func (a *aggregator[S]) State() flow.Stream[S] {
	return a.combined
}

// Current returns the latest combined state, falling back to the local
// state while inputs are still loading
func (a *aggregator[S]) Current() S {
	if v, ok := a.combined.Value(); ok {
		return v
	}
	return a.local.Value()
}

// Events streams one-shot effects to the observers attached at publish time
func (a *aggregator[S]) Events() flow.Stream[Effect] {
	return a.events
}

// Close detaches the screen from every input stream
func (a *aggregator[S]) Close() {
	a.combined.Close()
}

func (a *aggregator[S]) update(fn func(S) S) {
	a.local.Update(fn)
}

func (a *aggregator[S]) show(text string) {
	a.events.Publish(ShowMessage{Text: text})
}

// fail reports a failed write; the message ends with the error text
func (a *aggregator[S]) fail(prefix string, err error) {
	a.log.Warn(prefix, zap.Error(err))
	a.events.Publish(ShowMessage{Text: prefix + " " + err.Error(), Long: true})
}

func (a *aggregator[S]) warn(text string) {
	a.events.Publish(ShowMessage{Text: text, Long: true})
}

func (a *aggregator[S]) navigateBack() {
	a.events.Publish(NavigateBack{})
}

// deletePending removes the session waiting for confirmation, if any
func (a *aggregator[S]) deletePending(ctx context.Context, sessions repository.SessionRepository, pending *models.Session, clear func(S) S) {
	if pending == nil {
		return
	}
	if err := sessions.DeleteSession(ctx, pending.ID); err != nil {
		a.fail("Failed to delete Study Session.", err)
		return
	}
	a.update(clear)
	a.show("Study Session Deleted Successfully.")
}
