package flow

import "sync"

// Bus is a multicast stream without replay. A value published while nobody
// is subscribed is dropped; late subscribers never see past values.
type Bus[T any] struct {
	emit sync.Mutex
	subs Fanout[T]
}

// NewBus returns an empty Bus
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Publish delivers v to the subscribers attached right now
func (b *Bus[T]) Publish(v T) {
	b.emit.Lock()
	defer b.emit.Unlock()
	b.subs.Send(v)
}

// Subscribe attaches fn for future values only
func (b *Bus[T]) Subscribe(fn func(T)) func() {
	id := b.subs.Add(fn)
	return func() {
		b.subs.Remove(id)
	}
}
