// Package cache provides a generic in-memory key/value store with
// per-entry expiration. It is a best-effort optimization: callers must
// always be able to recompute on a miss.
package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSweepInterval bounds how long an expired entry can linger
// before the background sweep reclaims it.
const DefaultSweepInterval = 60 * time.Second

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache is a TTL cache safe for concurrent use. Writes to the same key
// are last-writer-wins; there is no transactional guarantee across a
// read-then-write sequence.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]

	sweepInterval time.Duration
	stopOnce      sync.Once
	quit          chan struct{}

	// now is swapped out in tests to simulate clock advance.
	now func() time.Time
}

// New creates a cache and starts its background sweep. Callers own the
// lifecycle and must Stop the cache at shutdown.
func New[K comparable, V any](sweepInterval time.Duration) *Cache[K, V] {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	c := &Cache[K, V]{
		entries:       make(map[K]entry[V]),
		sweepInterval: sweepInterval,
		quit:          make(chan struct{}),
		now:           time.Now,
	}
	go c.sweepLoop()
	return c
}

// Set stores value under key with the given ttl.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Get returns the value for key if present and not expired. A stale
// entry is lazily evicted and reported as a miss.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		// Recheck under the write lock: a concurrent Set may have
		// refreshed the entry.
		if cur, ok := c.entries[key]; ok && cur.expired(c.now()) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Delete removes key if present.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the sweep goroutine. Subsequent calls are no-ops.
func (c *Cache[K, V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.quit)
	})
}

func (c *Cache[K, V]) sweepLoop() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := c.removeExpired()
			if removed > 0 {
				log.Debug().Int("removed", removed).Msg("cache sweep evicted expired entries")
			}
		case <-c.quit:
			return
		}
	}
}

func (c *Cache[K, V]) removeExpired() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
