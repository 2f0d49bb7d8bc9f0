// Package flow holds the small push-based primitives the rest of the app is
// wired with: a latest-value State, a non-replaying Bus, Map, and Combined
// which implements combine-latest over several streams.
//
// Subscribers are plain callbacks. Delivery to the subscribers of one source
// is serialized, so a callback must not synchronously subscribe to, set or
// publish on the same source it is being called from. Cancelling from inside
// a callback is allowed.
package flow

import "sync"

// Stream is a source of values pushed to subscribers
type Stream[T any] interface {
	Subscribe(fn func(T)) (cancel func())
}

// StreamFunc adapts a function to the Stream interface
type StreamFunc[T any] func(fn func(T)) func()

// Subscribe implements Stream
func (f StreamFunc[T]) Subscribe(fn func(T)) func() {
	return f(fn)
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Fanout keeps an ordered set of subscriber callbacks. It is the building
// block for every source in this package and for the store's query streams.
type Fanout[T any] struct {
	mu   sync.Mutex
	next uint64
	subs []subscriber[T]
}

// Add registers fn and returns the id to remove it with
func (f *Fanout[T]) Add(fn func(T)) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.subs = append(f.subs, subscriber[T]{id: f.next, fn: fn})
	return f.next
}

// Remove drops a subscriber and returns how many are left
func (f *Fanout[T]) Remove(id uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s.id == id {
			f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
			break
		}
	}
	return len(f.subs)
}

// Len returns the number of subscribers
func (f *Fanout[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Send delivers v to a snapshot of the current subscribers
func (f *Fanout[T]) Send(v T) {
	f.mu.Lock()
	subs := make([]subscriber[T], len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, s := range subs {
		s.fn(v)
	}
}

// Map returns a stream applying fn to every value of src
func Map[A, B any](src Stream[A], fn func(A) B) Stream[B] {
	return StreamFunc[B](func(emit func(B)) func() {
		return src.Subscribe(func(a A) {
			emit(fn(a))
		})
	})
}

// First returns the value src delivers synchronously on subscription, if any.
// It suits sources that replay their current value, such as State and
// store queries.
func First[T any](src Stream[T]) (T, bool) {
	var (
		v  T
		ok bool
	)
	cancel := src.Subscribe(func(x T) {
		if !ok {
			v, ok = x, true
		}
	})
	cancel()
	return v, ok
}
