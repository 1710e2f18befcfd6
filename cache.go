package fleettrack

import (
	"sync"
	"time"
)

// responseCache memoizes rendered feed bodies by request key. Entries expire
// after ttl and are dropped as soon as any truck publishes a new sample. A body
// built before the last clear is never stored: callers read generation before
// taking their snapshot and hand it back to put.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	gen     uint64
	entries map[string]cacheEntry
}

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// newResponseCache creates a cache; a non-positive ttl disables it.
func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{ttl: ttl, entries: map[string]cacheEntry{}}
}

func (c *responseCache) get(key string, now time.Time) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !now.Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

func (c *responseCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// put stores body unless the cache was cleared since gen was read.
func (c *responseCache) put(key string, body []byte, now time.Time, gen uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entries[key] = cacheEntry{body: body, expires: now.Add(c.ttl)}
}

func (c *responseCache) clear() {
	c.mu.Lock()
	c.gen++
	clear(c.entries)
	c.mu.Unlock()
}

func (c *responseCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
