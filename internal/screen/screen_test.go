package screen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/balkashynov/studysmart/internal/db"
	"github.com/balkashynov/studysmart/internal/flow"
	"github.com/balkashynov/studysmart/internal/models"
	"github.com/balkashynov/studysmart/internal/repository"
	"github.com/balkashynov/studysmart/internal/timer"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// fakeTimer applies actions synchronously
type fakeTimer struct {
	snap    *flow.State[timer.Snapshot]
	mu      sync.Mutex
	subject uint
	actions []timer.Action
	err     error
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{snap: flow.NewState(timer.NewSnapshot(timer.Idle, 0))}
}

func (f *fakeTimer) Subscribe(fn func(timer.Snapshot)) func() { return f.snap.Subscribe(fn) }
func (f *fakeTimer) Snapshot() timer.Snapshot                  { return f.snap.Value() }

func (f *fakeTimer) Dispatch(_ context.Context, a timer.Action) error {
	f.mu.Lock()
	f.actions = append(f.actions, a)
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return err
	}

	cur := f.snap.Value()
	switch a {
	case timer.ActionStart:
		f.snap.Set(timer.NewSnapshot(timer.Started, cur.Duration))
	case timer.ActionStop:
		if cur.State == timer.Started {
			f.snap.Set(timer.NewSnapshot(timer.Stopped, cur.Duration))
		}
	case timer.ActionCancel:
		f.snap.Set(timer.NewSnapshot(timer.Idle, 0))
	}
	return nil
}

func (f *fakeTimer) SubjectID() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subject
}

func (f *fakeTimer) SetSubjectID(id uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subject = id
}

func (f *fakeTimer) Actions() []timer.Action {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]timer.Action(nil), f.actions...)
}

// elapse pretends the timer ran for secs
func (f *fakeTimer) elapse(secs int64) {
	f.snap.Update(func(s timer.Snapshot) timer.Snapshot {
		return timer.NewSnapshot(s.State, s.Duration+secs)
	})
}

type fixture struct {
	deps  Deps
	repos repository.Repositories
	timer *fakeTimer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := db.Open(db.MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f := &fixture{repos: repository.New(store), timer: newFakeTimer()}
	f.deps = Deps{
		Repos: f.repos,
		Timer: f.timer,
		Now:   func() time.Time { return fixedNow },
	}
	return f
}

func (f *fixture) subject(t *testing.T, name string, goal float64) models.Subject {
	t.Helper()
	s := models.Subject{Name: name, GoalHours: goal, Colors: models.PaletteColors(0)}
	_, err := f.repos.Subjects.UpsertSubject(context.Background(), &s)
	require.NoError(t, err)
	return s
}

func value[T any](t *testing.T, src flow.Stream[T]) T {
	t.Helper()
	v, ok := flow.First(src)
	require.True(t, ok, "stream has no value")
	return v
}

// effects records everything published on a screen's event stream
type effects struct {
	mu  sync.Mutex
	all []Effect
}

func watch(t *testing.T, src flow.Stream[Effect]) *effects {
	e := &effects{}
	cancel := src.Subscribe(func(ef Effect) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.all = append(e.all, ef)
	})
	t.Cleanup(cancel)
	return e
}

func (e *effects) list() []Effect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Effect(nil), e.all...)
}

func (e *effects) messages() []string {
	var out []string
	for _, ef := range e.list() {
		if m, ok := ef.(ShowMessage); ok {
			out = append(out, m.Text)
		}
	}
	return out
}
