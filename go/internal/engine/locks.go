package engine

import (
	"sync"

	"github.com/google/uuid"
)

// leagueLocks serializes transaction processing per league. Every processor
// holds the league's lock across its validate and apply phases so two
// concurrent calls can never both validate against a stale snapshot.
type leagueLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLeagueLocks() *leagueLocks {
	return &leagueLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// lock acquires the league's mutex, creating it on first use. Locks are
// never removed; a league's lock lives as long as the process.
func (l *leagueLocks) lock(lid uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[lid]
	if !ok {
		m = &sync.Mutex{}
		l.locks[lid] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
