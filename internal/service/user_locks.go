package service

import (
	"sync"

	"github.com/google/uuid"
)

// UserLocks serializes financial mutations per user. Any read-modify-write
// that spans the ledger and a goal or profile record (goal contribution,
// goal cancellation, vault moves, budget set) must hold the user's lock so
// two concurrent mutations cannot both act on a stale balance. Pure
// aggregation reads run unsynchronized.
type UserLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewUserLocks creates an empty lock registry. One registry is shared by
// every service that mutates user money.
func NewUserLocks() *UserLocks {
	return &UserLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Lock acquires the mutex for a user, creating it on first use, and returns
// the matching unlock. Entries live for the life of the process.
func (l *UserLocks) Lock(userID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
