// Package assets fetches and parses hero model assets.
package assets

import "sync"

// DefaultCacheBudget bounds the bytes a fetcher keeps between loads.
const DefaultCacheBudget = 64 << 20

// Cache holds fetched asset bytes keyed by URL. Once the total size
// passes the budget the oldest entries are dropped.
type Cache struct {
	mu     sync.Mutex
	budget int
	size   int
	data   map[string][]byte
	order  []string

	hits   int
	misses int
}

// NewCache creates a cache holding at most budget bytes. A budget of
// zero or less keeps everything.
func NewCache(budget int) *Cache {
	return &Cache{budget: budget, data: make(map[string][]byte)}
}

// Get returns the bytes stored for url.
func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[url]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores data for url. Entries larger than the budget are not kept.
func (c *Cache) Set(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.budget > 0 && len(data) > c.budget {
		return
	}
	if old, ok := c.data[url]; ok {
		c.size -= len(old)
	} else {
		c.order = append(c.order, url)
	}
	c.data[url] = data
	c.size += len(data)

	for c.budget > 0 && c.size > c.budget && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		c.size -= len(c.data[oldest])
		delete(c.data, oldest)
	}
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.order = nil
	c.size = 0
	c.hits, c.misses = 0, 0
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Size returns the bytes currently held.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}
