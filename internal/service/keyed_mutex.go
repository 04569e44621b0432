package service

import "sync"

// keyedMutex serializes operations sharing a key. Used to close the
// check-then-act window on per-customer and per-username guards within this
// process; the database constraints remain the backstop.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock acquires the lock for key, blocking until it is free.
func (m *keyedMutex) Lock(key string) {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &keyedLock{}
		m.locks[key] = lock
	}
	lock.refs++
	m.mu.Unlock()

	lock.mu.Lock()
}

// Unlock releases the lock for key and drops it once unused.
func (m *keyedMutex) Unlock(key string) {
	m.mu.Lock()
	lock, ok := m.locks[key]
	if ok {
		lock.refs--
		if lock.refs <= 0 {
			delete(m.locks, key)
		}
	}
	m.mu.Unlock()

	if ok {
		lock.mu.Unlock()
	}
}
