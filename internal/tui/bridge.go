package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/screen"
)

// latest is a one slot mailbox that keeps only the newest value. Put never
// blocks, so it can be fed from stream callbacks that hold locks the UI
// loop may need.
type latest[T any] struct {
	ch chan T
}

func newLatest[T any]() *latest[T] {
	return &latest[T]{ch: make(chan T, 1)}
}

func (l *latest[T]) put(v T) {
	for {
		select {
		case l.ch <- v:
			return
		default:
		}
		select {
		case <-l.ch:
		default:
		}
	}
}

// wait returns a command delivering the next value wrapped by wrap
func (l *latest[T]) wait(wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return wrap(<-l.ch)
	}
}

const effectBuffer = 32

// stateMsg carries a new combined state from a binding
type stateMsg[S any] struct {
	from  *binding[S]
	state S
}

// effectMsg carries a one-shot effect from a binding
type effectMsg struct {
	from   any
	effect screen.Effect
}

type aggregate[S any] interface {
	State() flow.Stream[S]
	Events() flow.Stream[screen.Effect]
}

// binding attaches a screen aggregator to mailboxes the UI loop reads from.
// Effects past the buffer are dropped rather than blocking the publisher.
type binding[S any] struct {
	states  *latest[S]
	effects chan screen.Effect
	done    chan struct{}
	cancel  []func()
}

func bind[S any](a aggregate[S]) *binding[S] {
	b := &binding[S]{
		states:  newLatest[S](),
		effects: make(chan screen.Effect, effectBuffer),
		done:    make(chan struct{}),
	}
	b.cancel = append(b.cancel,
		a.State().Subscribe(b.states.put),
		a.Events().Subscribe(func(e screen.Effect) {
			select {
			case b.effects <- e:
			default:
			}
		}),
	)
	return b
}

// waitState delivers the next state, or nothing once the binding is closed
func (b *binding[S]) waitState() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-b.states.ch:
			return stateMsg[S]{from: b, state: s}
		case <-b.done:
			return nil
		}
	}
}

// waitEffect delivers the next effect, or nothing once the binding is closed
func (b *binding[S]) waitEffect() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-b.effects:
			return effectMsg{from: b, effect: e}
		case <-b.done:
			return nil
		}
	}
}

func (b *binding[S]) close() {
	for _, cancel := range b.cancel {
		cancel()
	}
	close(b.done)
}
