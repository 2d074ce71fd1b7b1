package reconcile

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[V any] struct {
	value V
	built time.Time
}

// Cache holds loaded values by key for a TTL. Concurrent loads of the same
// key are collapsed with singleflight. A zero TTL disables storage but still
// collapses concurrent loads.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]cacheEntry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache[V]) fresh(e cacheEntry[V]) bool {
	if c.ttl == 0 {
		return false
	}
	return c.now().Sub(e.built) <= c.ttl
}

// GetOrLoad returns the cached value for key or loads and stores it.
// Failed loads are not cached.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if exists && c.fresh(entry) {
		return entry.value, nil
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		// Double-check after acquiring the flight
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if exists && c.fresh(entry) {
			return entry.value, nil
		}

		value, err := load()
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cacheEntry[V]{value: value, built: c.now()}
			c.mu.Unlock()
		}
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	value, _ := result.(V)
	return value, nil
}

// Invalidate removes key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge removes every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry[V])
	c.mu.Unlock()
}
