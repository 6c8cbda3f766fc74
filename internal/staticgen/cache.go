package staticgen

import (
	"sync"
	"time"
)

// Entry is one cached rendered page. Entries are immutable after insertion;
// revalidation replaces the whole entry rather than mutating it in place,
// so readers never observe a torn write.
type Entry struct {
	Body        []byte
	ContentType string
	RenderedAt  time.Time
}

type cacheRecord struct {
	entry     Entry
	expiresAt time.Time
}

// PageCache is a TTL-bound cache of rendered pages keyed by route. Reads
// are lock-shared; an expired entry reads as a miss and stays in place
// until the next Replace.
type PageCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	records map[string]cacheRecord
	now     func() time.Time
}

// NewPageCache builds a cache whose entries expire after ttl. Non-positive
// ttl falls back to DefaultMaxAge.
func NewPageCache(ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultMaxAge
	}
	return &PageCache{
		ttl:     ttl,
		records: make(map[string]cacheRecord),
		now:     time.Now,
	}
}

// Get returns the live entry for route, or false when the route is absent
// or its TTL has elapsed.
func (c *PageCache) Get(route string) (Entry, bool) {
	c.mu.RLock()
	record, ok := c.records[route]
	c.mu.RUnlock()

	if !ok || c.now().After(record.expiresAt) {
		return Entry{}, false
	}
	return record.entry, true
}

// Replace installs a fresh entry for route, restarting its TTL window.
func (c *PageCache) Replace(route string, entry Entry) {
	record := cacheRecord{
		entry:     entry,
		expiresAt: c.now().Add(c.ttl),
	}

	c.mu.Lock()
	c.records[route] = record
	c.mu.Unlock()
}

// Invalidate drops the entry for route if present.
func (c *PageCache) Invalidate(route string) {
	c.mu.Lock()
	delete(c.records, route)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
