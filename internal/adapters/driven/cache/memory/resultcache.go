// Package memory provides the in-memory result cache: thread-safe, TTL per
// entry with lazy expiry, and a least-recently-used cap on total entries.
package memory

import (
	"sync"
	"time"

	"github.com/spolujizda-labs/hledej/internal/core/domain"
	"github.com/spolujizda-labs/hledej/internal/core/ports/driven"
)

// DefaultMaxEntries caps the cache when no capacity is given. Query
// cardinality is naturally bounded by what users type, so the cap is a
// safety net rather than a working-set tuner.
const DefaultMaxEntries = 128

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

type entry struct {
	set          domain.RankedResultSet
	createdAt    time.Time
	ttl          time.Duration
	lastAccessed time.Time
}

// ResultCache memoises fused result sets per cache key.
type ResultCache struct {
	mu         sync.RWMutex
	entries    map[domain.CacheKey]*entry
	maxEntries int

	// now is swappable for tests.
	now func() time.Time
}

// NewResultCache creates a cache capped at maxEntries; zero or negative
// means DefaultMaxEntries.
func NewResultCache(maxEntries int) *ResultCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ResultCache{
		entries:    make(map[domain.CacheKey]*entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached set for the key if present and fresh. Expired
// entries are evicted lazily and reported as misses.
func (c *ResultCache) Get(key domain.CacheKey) (domain.RankedResultSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.RankedResultSet{}, false
	}

	if c.now().Sub(e.createdAt) >= e.ttl {
		delete(c.entries, key)
		return domain.RankedResultSet{}, false
	}

	e.lastAccessed = c.now()
	return e.set, true
}

// Put stores the set for the key, overwriting any existing entry. When the
// cache is full the least recently used entry makes room.
func (c *ResultCache) Put(key domain.CacheKey, set domain.RankedResultSet, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}

	now := c.now()
	c.entries[key] = &entry{
		set:          set,
		createdAt:    now,
		ttl:          ttl,
		lastAccessed: now,
	}
}

// Len returns the current number of entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldestLocked removes the least recently accessed entry.
// Caller must hold the write lock.
func (c *ResultCache) evictOldestLocked() {
	var oldestKey domain.CacheKey
	var oldest time.Time
	first := true

	for k, e := range c.entries {
		if first || e.lastAccessed.Before(oldest) {
			oldestKey = k
			oldest = e.lastAccessed
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
