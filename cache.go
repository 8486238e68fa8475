package monomotapa

import (
	"sync"
	"time"
)

// sitemapCache keeps the sitemap entries for a TTL so crawlers do not
// trigger a walk of src/ on every request. A zero TTL disables it.
type sitemapCache struct {
	mu      sync.RWMutex
	pages   []sitemapPage
	fetched time.Time
	ttl     time.Duration
	load    func() ([]sitemapPage, error)
}

func newSitemapCache(ttl time.Duration, load func() ([]sitemapPage, error)) *sitemapCache {
	return &sitemapCache{ttl: ttl, load: load}
}

func (c *sitemapCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read walks the sources again.
func (c *sitemapCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.mu.Unlock()
}

// Pages returns the cached entries, reloading them once the TTL expired.
// It tries a read lock first and only takes the write lock to reload.
func (c *sitemapCache) Pages() ([]sitemapPage, error) {
	if c.ttl <= 0 {
		return c.load()
	}

	c.mu.RLock()
	if c.valid() {
		pages := c.pages
		c.mu.RUnlock()
		return pages, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.pages, nil
	}
	pages, err := c.load()
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []sitemapPage{}
	}
	c.pages = pages
	c.fetched = time.Now()
	return pages, nil
}
