// Package placecache is the durable place-detail cache. It exists to avoid
// repeating paid detail lookups: entries are keyed by place ID, never expire,
// and survive restarts through a JSON snapshot.
package placecache

import (
	"sync"

	"leadscraper/internal/logger"
	"leadscraper/internal/platform/places"
	"leadscraper/internal/platform/snapshot"
)

type Cache struct {
	mu      sync.RWMutex
	entries map[string]places.Details
	path    string
	log     *logger.Logger
}

// New loads the snapshot at path. A missing or corrupt snapshot starts an
// empty cache; that costs API calls, not correctness.
func New(path string) *Cache {
	c := &Cache{
		entries: make(map[string]places.Details),
		path:    path,
		log:     logger.New("PlaceCache"),
	}
	var stored map[string]places.Details
	if err := snapshot.Load(path, &stored); err != nil {
		c.log.LogWarnf("cache snapshot unavailable, starting empty: %v", err)
		return c
	}
	if stored != nil {
		c.entries = stored
	}
	c.log.LogInfof("cache loaded: %d places", len(c.entries))
	return c
}

func (c *Cache) Get(placeID string) (places.Details, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.entries[placeID]
	return d, ok
}

func (c *Cache) Put(placeID string, d places.Details) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[placeID] = d
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush writes the full map to the disk snapshot.
func (c *Cache) Flush() error {
	c.mu.RLock()
	copied := make(map[string]places.Details, len(c.entries))
	for k, v := range c.entries {
		copied[k] = v
	}
	c.mu.RUnlock()
	return snapshot.Save(c.path, copied)
}
