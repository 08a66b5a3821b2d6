// Package contentcache memoizes generated explanation text per asset for
// the lifetime of one session.
package contentcache

import "github.com/ajitpratap0/legacyloop/internal/metrics"

// Cache maps an asset key to generated text. It has no size bound and no
// TTL; entries disappear only through InvalidateAll.
//
// Cache is not safe for concurrent use; it is owned by a single session.
type Cache struct {
	entries map[string]string
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the cached text for key.
func (c *Cache) Get(key string) (string, bool) {
	v, ok := c.entries[key]
	if ok {
		metrics.Inc(metrics.CacheHits)
	} else {
		metrics.Inc(metrics.CacheMisses)
	}
	return v, ok
}

// Put stores value under key, replacing any previous entry.
func (c *Cache) Put(key, value string) {
	c.entries[key] = value
}

// InvalidateAll drops every entry. Portfolio mutations call it before they
// report success, so cached text never outlives the portfolio it describes.
// Entries for untouched assets are dropped too.
func (c *Cache) InvalidateAll() {
	if len(c.entries) == 0 {
		return
	}
	clear(c.entries)
	metrics.Inc(metrics.CacheFlushes)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return len(c.entries) }
