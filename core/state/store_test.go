package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStorePutGetDelete(t *testing.T) {
	s := NewStore[string]()

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Put(1, "draft")
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "draft", got)

	s.Put(1, "replaced")
	got, _ = s.Get(1)
	assert.Equal(t, "replaced", got)

	assert.True(t, s.Delete(1))
	assert.False(t, s.Delete(1))
	assert.Equal(t, 0, s.Len())
}

func TestStoreIdleExpiry(t *testing.T) {
	clk := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore[int](WithTTL(10*time.Minute), WithClock(clk.Now))

	s.Put(1, 10)
	clk.Advance(5 * time.Minute)
	s.Put(2, 20)

	clk.Advance(6 * time.Minute)
	_, ok := s.Get(1)
	assert.False(t, ok, "session idle for 11m must be expired")
	v, ok := s.Get(2)
	assert.True(t, ok)
	assert.Equal(t, 20, v)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
}

func TestStoreWithoutTTLNeverExpires(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	s := NewStore[int](WithClock(clk.Now))
	s.Put(1, 1)
	clk.Advance(24 * 365 * time.Hour)
	_, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 0, s.Sweep())
}

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	km := NewKeyedMutex()
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock(7)
			defer unlock()
			v := counter
			time.Sleep(time.Microsecond)
			counter = v + 1
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Empty(t, km.locks)
}
