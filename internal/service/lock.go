package service

import (
	"sync"
)

// shopLocks hands out one mutex per shop ID so rating recomputes for the
// same shop serialize in-process. Entries are never evicted; the map is
// bounded by the number of shops that received a review mutation.
type shopLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newShopLocks() *shopLocks {
	return &shopLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given shop and returns its unlock
// function.
func (l *shopLocks) Lock(shopID string) func() {
	l.mu.Lock()
	m, ok := l.locks[shopID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[shopID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
