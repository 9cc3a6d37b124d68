package cache

import (
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type entry struct {
	value    []byte
	deadline time.Time
}

// MemoryCache is the process-local backend. Entries expire lazily on Get;
// there is no janitor goroutine, stale entries just sit until touched or
// invalidated.
type MemoryCache struct {
	entries *xsync.MapOf[string, entry]
	ttl     time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: xsync.NewMapOf[string, entry](),
		ttl:     ttl,
	}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	e, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.deadline) {
		c.entries.Delete(key)
		return nil, false
	}
	return e.value, true
}

func (c *MemoryCache) Set(key string, value []byte) {
	c.entries.Store(key, entry{
		value:    value,
		deadline: time.Now().Add(c.ttl),
	})
}

func (c *MemoryCache) DeletePrefix(prefix string) {
	c.entries.Range(func(key string, _ entry) bool {
		if strings.HasPrefix(key, prefix) {
			c.entries.Delete(key)
		}
		return true
	})
}
