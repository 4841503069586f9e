package memory

import (
	"context"
	"sync"
)

// lockEntry is the per-key semaphore plus the number of goroutines holding or
// waiting on it. The entry is dropped from the map when refs reaches zero, so
// the table never grows beyond the keys currently in use.
type lockEntry struct {
	sem  chan struct{}
	refs int
}

// LockManager provides blocking, per-key mutual exclusion. The rental ledger
// locks on the car id, which makes "is this car free? then book it" a single
// atomic step per car while bookings on different cars proceed in parallel.
//
// This in-memory version only works inside one process. Sharing a fleet
// across processes would need a lease from an external store instead.
//
// Go Learning Note — Buffered Channels as Semaphores:
// A channel with capacity 1 behaves like a mutex: a send succeeds only while
// the buffer is empty, and a receive frees the slot. Unlike sync.Mutex, a
// channel send can sit in a select next to <-ctx.Done(), so waiting for the
// lock can be abandoned when the caller's context is cancelled.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[string]*lockEntry),
	}
}

// Lock blocks until key is free, then returns a func that releases it. Calling
// the release func more than once is harmless. If ctx ends first, Lock returns
// ctx.Err() and holds nothing.
func (lm *LockManager) Lock(ctx context.Context, key string) (func(), error) {
	lm.mu.Lock()
	entry, exists := lm.locks[key]
	if !exists {
		entry = &lockEntry{sem: make(chan struct{}, 1)}
		lm.locks[key] = entry
	}
	entry.refs++
	lm.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
	case <-ctx.Done():
		lm.release(key, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.sem
			lm.release(key, entry)
		})
	}, nil
}

func (lm *LockManager) release(key string, entry *lockEntry) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(lm.locks, key)
	}
}
