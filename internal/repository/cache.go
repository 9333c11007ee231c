package repository

import (
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a loaded table is served without a fresh
// sheet read. The cache is process-local on purpose: one session's write is
// not visible to another session's cache until that cache expires, which is
// the documented visibility model of the tool.
const DefaultCacheTTL = 10 * time.Minute

// readCache holds one loaded table with a time-based expiry. Every write
// through the owning repository must call invalidate before the next read
// is considered authoritative.
type readCache struct {
	mu  sync.Mutex
	ttl time.Duration
	val any
	exp time.Time
}

func newReadCache(ttl time.Duration) readCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return readCache{ttl: ttl}
}

func (c *readCache) get() (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.val == nil || time.Now().After(c.exp) {
		return nil, false
	}
	return c.val, true
}

func (c *readCache) put(v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = v
	c.exp = time.Now().Add(c.ttl)
}

func (c *readCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = nil
}
