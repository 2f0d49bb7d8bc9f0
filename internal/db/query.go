package db

import (
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/balkashynov/studysmart/internal/flow"
)

// Query is a reactive read. A subscriber gets the current result right away
// and again after every committed write to one of the query's tables that
// changed the result.
type Query[T any] struct {
	store  *Store
	name   string
	tables []string
	fetch  func(tx *gorm.DB) (T, error)
	id     uuid.UUID

	mu     sync.Mutex // serializes loading and delivery
	last   T
	loaded bool

	regMu sync.Mutex // guards registration against subscriber count
	subs  flow.Fanout[T]
}

func newQuery[T any](s *Store, name string, fetch func(tx *gorm.DB) (T, error), tables ...string) *Query[T] {
	return &Query[T]{
		store:  s,
		name:   name,
		tables: tables,
		fetch:  fetch,
		id:     uuid.New(),
	}
}

// Subscribe implements flow.Stream
func (q *Query[T]) Subscribe(fn func(T)) func() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.regMu.Lock()
	if q.subs.Len() == 0 {
		q.store.tracker.register(q.id, q.tables, q.refresh)
		q.loaded = false
	}
	id := q.subs.Add(fn)
	q.regMu.Unlock()

	if !q.loaded {
		v, err := q.load()
		if err != nil {
			q.store.log.Error("query failed", zap.String("query", q.name), zap.Error(err))
		} else {
			q.last, q.loaded = v, true
		}
	}
	if q.loaded {
		fn(q.last)
	}

	return func() {
		q.regMu.Lock()
		defer q.regMu.Unlock()
		if q.subs.Remove(id) == 0 {
			q.store.tracker.unregister(q.id)
		}
	}
}

func (q *Query[T]) refresh() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.subs.Len() == 0 {
		return
	}

	v, err := q.load()
	if err != nil {
		q.store.log.Error("query refresh failed", zap.String("query", q.name), zap.Error(err))
		return
	}
	if q.loaded && cmp.Equal(q.last, v, cmpopts.EquateEmpty()) {
		return
	}
	q.last, q.loaded = v, true
	q.subs.Send(v)
}

func (q *Query[T]) load() (T, error) {
	var out T
	err := q.store.read(func(tx *gorm.DB) error {
		v, err := q.fetch(tx)
		out = v
		return err
	})
	return out, err
}
