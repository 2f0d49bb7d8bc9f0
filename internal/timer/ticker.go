package timer

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker is the periodic source that drives the engine. Start begins calling
// fn once per second until the returned stop func is called.
type Ticker interface {
	Start(fn func()) (stop func(), err error)
}

// everySecond fires exactly one second after the previous activation.
// cron's "@every" rounds to whole seconds, which would make the first tick
// after a start land early.
type everySecond struct{}

func (everySecond) Next(t time.Time) time.Time {
	return t.Add(time.Second)
}

// CronTicker schedules ticks as a cron entry firing every second. The entry
// is removed on stop so no tick runs while the timer is paused.
type CronTicker struct {
	cron *cron.Cron
}

// NewCronTicker creates a ticker backed by its own cron scheduler
func NewCronTicker() *CronTicker {
	return &CronTicker{cron: cron.New(cron.WithSeconds())}
}

func (c *CronTicker) Start(fn func()) (func(), error) {
	id := c.cron.Schedule(everySecond{}, cron.FuncJob(fn))
	c.cron.Start()

	var once sync.Once
	return func() {
		once.Do(func() { c.cron.Remove(id) })
	}, nil
}

// Close stops the scheduler and waits for a running tick to return
func (c *CronTicker) Close() {
	<-c.cron.Stop().Done()
}

// ManualTicker only ticks when Tick is called
type ManualTicker struct {
	mu sync.Mutex
	fn func()
}

func (m *ManualTicker) Start(fn func()) (func(), error) {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.fn = nil
		m.mu.Unlock()
	}, nil
}

// Tick fires one tick if the ticker is running and reports whether it did
func (m *ManualTicker) Tick() bool {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

// Running reports whether a tick source is attached
func (m *ManualTicker) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}
