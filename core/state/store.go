package state

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	value   T
	touched time.Time
}

// Store keeps one session value per user. Sessions idle for longer than the
// configured TTL are treated as absent and dropped by Sweep.
type Store[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]entry[T]
	ttl      time.Duration
	now      func() time.Time
}

// Option customizes a Store.
type Option func(*storeOptions)

type storeOptions struct {
	ttl time.Duration
	now func() time.Time
}

// WithTTL sets the idle expiry. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(o *storeOptions) { o.ttl = ttl }
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewStore constructs an empty in-memory Store.
func NewStore[T any](opts ...Option) *Store[T] {
	o := storeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		sessions: make(map[int64]entry[T]),
		ttl:      o.ttl,
		now:      o.now,
	}
}

// Get returns the session for userID if present and not expired.
func (s *Store[T]) Get(userID int64) (T, bool) {
	s.mu.RLock()
	e, ok := s.sessions[userID]
	s.mu.RUnlock()
	if !ok || s.expired(e, s.now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put stores value for userID, replacing any previous session, and refreshes its idle timer.
func (s *Store[T]) Put(userID int64, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = entry[T]{value: value, touched: s.now()}
}

// Delete removes the session for userID and reports whether one existed.
func (s *Store[T]) Delete(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *Store[T]) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.sessions {
		if s.expired(e, now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, if set,
// receives the number of sessions dropped by each non-empty sweep.
func (s *Store[T]) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(int)) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (s *Store[T]) expired(e entry[T], now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.touched) > s.ttl
}
