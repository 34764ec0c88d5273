package lr

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// TableCache caches action tables by grammar fingerprint. Entries expire
// a time-to-live after they have been stored; if the cache is full, the least
// recently used entry is evicted. A TableCache is safe for concurrent use.
type TableCache struct {
	lru      *expirable.LRU[string, *ActionTable]
	ttl      time.Duration
	capacity int
}

// CacheOption configures a TableCache.
type CacheOption func(*TableCache)

// WithTTL sets the time-to-live of cache entries. Zero means no expiry.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *TableCache) {
		c.ttl = ttl
	}
}

// WithCapacity limits the number of cached tables. Zero means no limit.
func WithCapacity(n int) CacheOption {
	return func(c *TableCache) {
		c.capacity = n
	}
}

// Defaults for table caches.
const (
	DefaultCacheTTL      = 30 * time.Minute
	DefaultCacheCapacity = 64
)

// NewTableCache creates a table cache.
func NewTableCache(opts ...CacheOption) *TableCache {
	c := &TableCache{
		ttl:      DefaultCacheTTL,
		capacity: DefaultCacheCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lru = expirable.NewLRU[string, *ActionTable](c.capacity, func(key string, _ *ActionTable) {
		tracer().Debugf("table cache evicts %s", key)
	}, c.ttl)
	return c
}

// TableFor returns the cached table for a grammar, building and caching it
// if necessary. Tables built with StrictConflicts are cached separately.
func (c *TableCache) TableFor(g *Grammar, opts ...BuildOption) (*ActionTable, error) {
	b := NewLALR1Builder(g, opts...)
	key, err := Fingerprint(g)
	if err != nil {
		return nil, err
	}
	if b.strict {
		key += "/strict"
	}
	if t, ok := c.lru.Get(key); ok {
		tracer().Debugf("table cache hit for %s", g.Name)
		return t, nil
	}
	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, t)
	return t, nil
}

// Get looks up the table for a grammar.
func (c *TableCache) Get(g *Grammar) (*ActionTable, bool) {
	key, err := Fingerprint(g)
	if err != nil {
		return nil, false
	}
	return c.lru.Get(key)
}

// Put stores a table for a grammar.
func (c *TableCache) Put(g *Grammar, t *ActionTable) error {
	key, err := Fingerprint(g)
	if err != nil {
		return err
	}
	c.lru.Add(key, t)
	return nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (c *TableCache) Len() int {
	return c.lru.Len()
}

// Purge removes all entries.
func (c *TableCache) Purge() {
	c.lru.Purge()
}
