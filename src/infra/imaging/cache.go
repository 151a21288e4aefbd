package imaging

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"tinysort/src/features/metrics"
)

// DefaultCacheSize bounds the number of decoded bitmaps kept in memory.
const DefaultCacheSize = 4096

// Cache is a bounded, thread-safe bitmap cache keyed by path. Entries are
// never invalidated when the underlying file changes; a moved or edited file
// at a cached path may return a stale bitmap for the cache's lifetime.
type Cache struct {
	entries *lru.Cache[string, image.Image]
}

// NewCache creates a cache holding at most size decoded bitmaps, evicting
// the least recently used entry when full.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Get returns the cached bitmap for path, if present.
func (c *Cache) Get(path string) (image.Image, bool) {
	img, ok := c.entries.Get(path)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return img, ok
}

// Add stores a bitmap under path. Both real bitmaps and the error
// placeholder are valid values.
func (c *Cache) Add(path string, img image.Image) {
	c.entries.Add(path, img)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}
