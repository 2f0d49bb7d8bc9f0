package flow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects everything a stream delivers
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) add(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func TestState_ReplaysLatestToNewSubscribers(t *testing.T) {
	s := NewState(1)
	s.Set(2)

	var rec recorder[int]
	cancel := s.Subscribe(rec.add)
	s.Set(3)
	s.Update(func(v int) int { return v * 10 })

	assert.Equal(t, []int{2, 3, 30}, rec.all())
	assert.Equal(t, 30, s.Value())

	cancel()
	s.Set(4)
	assert.Equal(t, []int{2, 3, 30}, rec.all())
}

func TestState_MultipleSubscribers(t *testing.T) {
	s := NewState("a")
	var first, second recorder[string]
	s.Subscribe(first.add)
	s.Set("b")
	s.Subscribe(second.add)
	s.Set("c")

	assert.Equal(t, []string{"a", "b", "c"}, first.all())
	assert.Equal(t, []string{"b", "c"}, second.all())
}

func TestState_CancelFromCallback(t *testing.T) {
	s := NewState(0)
	var rec recorder[int]
	var cancel func()
	cancel = s.Subscribe(func(v int) {
		rec.add(v)
		if v == 1 {
			cancel()
		}
	})
	s.Set(1)
	s.Set(2)
	assert.Equal(t, []int{0, 1}, rec.all())
}

func TestBus_DoesNotReplay(t *testing.T) {
	b := NewBus[string]()
	b.Publish("lost")

	var early recorder[string]
	b.Subscribe(early.add)
	b.Publish("one")

	var late recorder[string]
	cancelLate := b.Subscribe(late.add)
	b.Publish("two")
	cancelLate()
	b.Publish("three")

	assert.Equal(t, []string{"one", "two", "three"}, early.all())
	assert.Equal(t, []string{"two"}, late.all())
}

func TestMap(t *testing.T) {
	s := NewState(2)
	var rec recorder[string]
	Map[int, string](s, func(v int) string {
		return string(rune('a' + v))
	}).Subscribe(rec.add)
	s.Set(3)
	assert.Equal(t, []string{"c", "d"}, rec.all())
}

type screen struct {
	Name  string
	Count int
	Items []string
}

func TestCombined_WaitsForEveryInput(t *testing.T) {
	local := NewState(screen{Name: "seed"})
	count := NewBus[int]()
	items := NewBus[[]string]()

	c := NewCombined[screen](local)
	Input(c, count, func(s screen, n int) screen { s.Count = n; return s })
	Input(c, items, func(s screen, v []string) screen { s.Items = v; return s })

	var rec recorder[screen]
	c.Subscribe(rec.add)
	c.Start()
	defer c.Close()

	_, ok := c.Value()
	assert.False(t, ok)

	count.Publish(3)
	assert.Empty(t, rec.all(), "must not emit before every input emitted")

	items.Publish([]string{"x"})
	require.Len(t, rec.all(), 1)
	assert.Equal(t, screen{Name: "seed", Count: 3, Items: []string{"x"}}, rec.all()[0])

	local.Update(func(s screen) screen { s.Name = "edited"; return s })
	count.Publish(4)

	got := rec.all()
	require.Len(t, got, 3)
	assert.Equal(t, screen{Name: "edited", Count: 3, Items: []string{"x"}}, got[1])
	assert.Equal(t, screen{Name: "edited", Count: 4, Items: []string{"x"}}, got[2])

	v, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, got[2], v)
}

func TestCombined_SeedOnlyEmitsImmediately(t *testing.T) {
	local := NewState(screen{Name: "only"})
	c := NewCombined[screen](local)
	c.Start()
	defer c.Close()

	v, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, "only", v.Name)
}

func TestCombined_CloseStopsUpdates(t *testing.T) {
	local := NewState(screen{})
	n := NewState(1)
	c := NewCombined[screen](local)
	Input(c, n, func(s screen, v int) screen { s.Count = v; return s })
	c.Start()

	var rec recorder[screen]
	c.Subscribe(rec.add)
	c.Close()
	n.Set(2)

	require.Len(t, rec.all(), 1)
	assert.Equal(t, 1, rec.all()[0].Count)
}

func TestCombined_InputAfterStartPanics(t *testing.T) {
	c := NewCombined[screen](NewState(screen{}))
	c.Start()
	defer c.Close()
	assert.Panics(t, func() {
		Input(c, NewState(1), func(s screen, v int) screen { return s })
	})
}

func TestCombined_ConcurrentInputs(t *testing.T) {
	local := NewState(screen{})
	n := NewState(0)
	c := NewCombined[screen](local)
	Input(c, n, func(s screen, v int) screen { s.Count = v; return s })
	c.Start()
	defer c.Close()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			n.Set(i)
		}(i)
		go func(i int) {
			defer wg.Done()
			local.Update(func(s screen) screen { s.Name = "n"; return s })
		}(i)
	}
	wg.Wait()

	v, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, n.Value(), v.Count)
	assert.Equal(t, "n", v.Name)
}

func TestCombined_DeriveRunsAfterInputs(t *testing.T) {
	type sum struct{ a, b, total int }
	seed := NewState(sum{})
	a := NewState(2)
	b := NewState(3)

	c := NewCombined[sum](seed)
	Input(c, a, func(s sum, v int) sum { s.a = v; return s })
	Input(c, b, func(s sum, v int) sum { s.b = v; return s })
	c.Derive(func(s sum) sum { s.total = s.a + s.b; return s })
	c.Start()
	defer c.Close()

	v, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, 5, v.total)

	b.Set(10)
	v, _ = c.Value()
	assert.Equal(t, 12, v.total)
}

func TestFirst(t *testing.T) {
	v, ok := First[int](NewState(7))
	require.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = First[int](NewBus[int]())
	assert.False(t, ok)
}
