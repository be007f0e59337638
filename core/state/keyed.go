package state

import "sync"

type keyedLock struct {
	mu      sync.Mutex
	waiters int
}

// KeyedMutex serializes work per user id. Locks for idle keys are released
// so the map does not grow with every user ever seen.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*keyedLock
}

// NewKeyedMutex returns a ready to use KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*keyedLock)}
}

// Lock blocks until the lock for key is held and returns its unlock function.
func (k *KeyedMutex) Lock(key int64) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.waiters++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.waiters--
		if l.waiters == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
