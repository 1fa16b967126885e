package catalog

import (
	"sync"
	"time"
)

// ttlCache absorbs autocomplete bursts against the bulk-details endpoint.
// Entries expire after ttl; a zero ttl disables caching.
type ttlCache struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]cacheEntry

	now func() time.Time // test hook
}

type cacheEntry struct {
	products []Product
	expires  time.Time
}

func newTTLCache(ttl time.Duration) *ttlCache {
	return &ttlCache{ttl: ttl, m: make(map[string]cacheEntry), now: time.Now}
}

func (c *ttlCache) get(key string) ([]Product, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[key]
	if !ok || c.now().After(e.expires) {
		delete(c.m, key)
		return nil, false
	}
	return e.products, true
}

func (c *ttlCache) put(key string, products []Product) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = cacheEntry{products: products, expires: c.now().Add(c.ttl)}
}
