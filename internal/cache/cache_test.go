package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(t *testing.T) (*Cache[string, int], *fakeClock) {
	t.Helper()
	c := New[string, int](time.Hour)
	t.Cleanup(c.Stop)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c.now = clock.Now
	return c, clock
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	_, found := c.Get("absent")
	assert.False(t, found)
}

func TestSetGet(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("k", 42, time.Second)
	v, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, 42, v)
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache(t)
	c.Set("k", 1, 100*time.Millisecond)

	clock.Advance(150 * time.Millisecond)
	_, found := c.Get("k")
	assert.False(t, found)
	// Lazy eviction removed the stale entry.
	assert.Equal(t, 0, c.Len())
}

func TestOverwriteRefreshesTTL(t *testing.T) {
	c, clock := newTestCache(t)
	c.Set("k", 1, 100*time.Millisecond)
	clock.Advance(80 * time.Millisecond)
	c.Set("k", 2, 100*time.Millisecond)
	clock.Advance(80 * time.Millisecond)

	v, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, 2, v)
}

func TestSweepRemovesExpired(t *testing.T) {
	c, clock := newTestCache(t)
	c.Set("stale", 1, time.Second)
	c.Set("fresh", 2, time.Hour)

	clock.Advance(2 * time.Second)
	removed := c.removeExpired()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())

	_, found := c.Get("fresh")
	assert.True(t, found)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	c.Set("k", 1, time.Hour)
	c.Delete("k")
	_, found := c.Get("k")
	assert.False(t, found)
}

func TestStopIsIdempotent(t *testing.T) {
	c := New[string, int](time.Hour)
	c.Stop()
	c.Stop()
}

func TestConcurrentAccess(t *testing.T) {
	c, _ := newTestCache(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n%4)
			for j := 0; j < 200; j++ {
				c.Set(key, j, time.Minute)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, c.Len())
}
