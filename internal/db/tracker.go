package db

import (
	"sync"

	"github.com/google/uuid"
)

// tracker maps tables to the live queries reading them. It only references
// queries that currently have subscribers.
type tracker struct {
	mu      sync.Mutex
	byTable map[string]map[uuid.UUID]func()
}

func newTracker() *tracker {
	return &tracker{byTable: make(map[string]map[uuid.UUID]func())}
}

func (t *tracker) register(id uuid.UUID, tables []string, refresh func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, table := range tables {
		if t.byTable[table] == nil {
			t.byTable[table] = make(map[uuid.UUID]func())
		}
		t.byTable[table][id] = refresh
	}
}

func (t *tracker) unregister(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, refreshers := range t.byTable {
		delete(refreshers, id)
	}
}

// notify refreshes each query reading any of the tables exactly once
func (t *tracker) notify(tables ...string) {
	t.mu.Lock()
	seen := make(map[uuid.UUID]bool)
	var pending []func()
	for _, table := range tables {
		for id, refresh := range t.byTable[table] {
			if seen[id] {
				continue
			}
			seen[id] = true
			pending = append(pending, refresh)
		}
	}
	t.mu.Unlock()

	for _, refresh := range pending {
		refresh()
	}
}

// live reports how many queries are registered for a table
func (t *tracker) live(table string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byTable[table])
}
