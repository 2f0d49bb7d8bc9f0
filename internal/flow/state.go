package flow

import "sync"

// State holds a single latest value and replays it to every new subscriber.
// It is the container for screen-local transient state and timer snapshots.
type State[T any] struct {
	emit sync.Mutex // serializes writes and delivery

	mu    sync.RWMutex
	value T

	subs Fanout[T]
}

// NewState returns a State seeded with initial
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial}
}

// Value returns the current value
func (s *State[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers
func (s *State[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update atomically derives the next value from the current one
func (s *State[T]) Update(fn func(T) T) {
	s.emit.Lock()
	defer s.emit.Unlock()

	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	s.mu.Unlock()

	s.subs.Send(next)
}

// Subscribe delivers the current value immediately and every later one
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.emit.Lock()
	defer s.emit.Unlock()

	id := s.subs.Add(fn)
	fn(s.Value())

	return func() {
		s.subs.Remove(id)
	}
}
