package analytics

import (
	"fmt"
	"hash/fnv"
	"sync"
)

// Cache memoizes aggregation results within one computation session. It is
// advisory only: entries may be dropped at any time without affecting
// correctness, and it is never written to durable storage. Each Engine gets
// its own instance so tests can construct isolated ones.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]any
}

// NewCache builds an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]any)}
}

// Key derives a deterministic cache key from the call signature parts.
// Parts must render deterministically via fmt; the snapshot version stands
// in for the events' identity.
func (c *Cache) Key(parts ...any) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		fmt.Fprintf(h, "%#v|", p)
	}
	return h.Sum64()
}

// Get returns the memoized value for the key, if present.
func (c *Cache) Get(key uint64) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a value under the key.
func (c *Cache) Put(key uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear drops all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]any)
}

// Len returns the number of memoized entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
