package flow

import "sync"

// Combined merges a seed stream with any number of input streams
// (combine-latest). Nothing is emitted until every source has produced at
// least one value; after that every emission of any source recomputes the
// result from the latest value of all of them.
//
// The result is built by starting from the latest seed value and applying the
// latest value of each input in the order the inputs were added.
type Combined[S any] struct {
	mu      sync.Mutex // guards sources and orders delivery
	sources []*source[S]
	cancels []func()
	derive  func(S) S
	started bool
	closed  bool

	valMu sync.RWMutex
	value S
	ready bool

	subs Fanout[S]
}

type source[S any] struct {
	subscribe func() func()
	apply     func(S) S
	set       bool
}

// NewCombined starts a combination seeded by seed. The seed usually is a
// State holding the screen's transient fields.
func NewCombined[S any](seed Stream[S]) *Combined[S] {
	c := &Combined[S]{}
	Input(c, seed, func(_ S, v S) S { return v })
	return c
}

// Input adds src to c; apply folds a value of src into the result.
// Inputs must be added before Start.
func Input[S, T any](c *Combined[S], src Stream[T], apply func(S, T) S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		panic("flow: Input called after Start")
	}

	idx := len(c.sources)
	c.sources = append(c.sources, &source[S]{
		subscribe: func() func() {
			return src.Subscribe(func(v T) {
				c.receive(idx, func(s S) S { return apply(s, v) })
			})
		},
	})
}

// Derive sets a step run on every recomputed result, after all inputs were
// applied. It must be set before Start.
func (c *Combined[S]) Derive(fn func(S) S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		panic("flow: Derive called after Start")
	}
	c.derive = fn
}

// Start subscribes to every source
func (c *Combined[S]) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	sources := c.sources
	c.mu.Unlock()

	// sources deliver synchronously on subscribe, so c.mu must not be held here
	cancels := make([]func(), 0, len(sources))
	for _, src := range sources {
		cancels = append(cancels, src.subscribe())
	}

	c.mu.Lock()
	closed := c.closed
	if !closed {
		c.cancels = cancels
	}
	c.mu.Unlock()

	if closed {
		for _, cancel := range cancels {
			cancel()
		}
	}
}

// Close unsubscribes from every source. Subscribers receive nothing further.
func (c *Combined[S]) Close() {
	c.mu.Lock()
	c.closed = true
	cancels := c.cancels
	c.cancels = nil
	c.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Value returns the latest combined value and whether there is one yet
func (c *Combined[S]) Value() (S, bool) {
	c.valMu.RLock()
	defer c.valMu.RUnlock()
	return c.value, c.ready
}

// Subscribe replays the latest combined value, if any, then every new one
func (c *Combined[S]) Subscribe(fn func(S)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.subs.Add(fn)
	if v, ok := c.Value(); ok {
		fn(v)
	}

	return func() {
		c.subs.Remove(id)
	}
}

func (c *Combined[S]) receive(idx int, apply func(S) S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.sources[idx].apply = apply
	c.sources[idx].set = true

	var next S
	for _, src := range c.sources {
		if !src.set {
			return
		}
		next = src.apply(next)
	}
	if c.derive != nil {
		next = c.derive(next)
	}

	c.valMu.Lock()
	c.value = next
	c.ready = true
	c.valMu.Unlock()

	c.subs.Send(next)
}
