package resolver

import (
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// readCache caches successful name→identifier lookups. It is owned by the
// actor goroutine, which invalidates on every mutation, so cached reads can
// never go stale: all mutations and reads are serialized through the same
// inbox.
type readCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// newReadCache returns a cache with the given TTL, or nil (disabled) when
// ttl is zero or negative.
func newReadCache(ttl time.Duration) *readCache {
	if ttl <= 0 {
		return nil
	}
	return &readCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func (c *readCache) get(name string) (uuid.UUID, bool) {
	if c == nil {
		return uuid.UUID{}, false
	}
	v, ok := c.cache.Get(name)
	if !ok {
		return uuid.UUID{}, false
	}
	return v.(uuid.UUID), true
}

func (c *readCache) set(name string, uid uuid.UUID) {
	if c == nil {
		return
	}
	c.cache.Set(name, uid, c.ttl)
}

func (c *readCache) invalidate(name string) {
	if c == nil {
		return
	}
	c.cache.Delete(name)
}
