package dataset

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"fi-dashboard/internal/domain"
)

// CacheStats reports cache activity since creation.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Loads   int64 `json:"loads"`
}

// Cache is a process-local read-through cache in front of a DatasetLoader,
// keyed by resolved absolute path. Callers always receive a deep copy, so a
// cached dataset cannot be mutated through a returned value. Failed loads
// are not cached.
type Cache struct {
	loader domain.DatasetLoader

	mu      sync.RWMutex
	entries map[string]*domain.Dataset
	// gens counts invalidations per path; epoch counts Clear calls. A read
	// is stored only if neither moved while it was in flight.
	gens  map[string]uint64
	epoch uint64

	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

// NewCache wraps loader. A nil loader uses the filesystem Loader.
func NewCache(loader domain.DatasetLoader) *Cache {
	if loader == nil {
		loader = Loader{}
	}
	return &Cache{
		loader:  loader,
		entries: make(map[string]*domain.Dataset),
		gens:    make(map[string]uint64),
	}
}

// Load returns the dataset at path, reading it through the underlying loader
// on a miss. Concurrent misses for the same path share one read.
func (c *Cache) Load(path string) (*domain.Dataset, error) {
	key, err := ResolvePath(path)
	if err != nil {
		return nil, domain.ErrLoad(path, err)
	}

	c.mu.RLock()
	ds, ok := c.entries[key]
	gen, epoch := c.gens[key], c.epoch
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return ds.Clone(), nil
	}
	c.misses.Add(1)

	// Reads started after an invalidation never join a flight from before it.
	flight := fmt.Sprintf("%s\x00%d.%d", key, epoch, gen)
	v, err, _ := c.group.Do(flight, func() (interface{}, error) {
		loaded, err := c.loader.Load(key)
		if err != nil {
			return nil, err
		}
		c.loads.Add(1)
		c.mu.Lock()
		// An Invalidate of this path or a Clear that raced with the read wins.
		if c.epoch == epoch && c.gens[key] == gen {
			c.entries[key] = loaded
		}
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Dataset).Clone(), nil
}

// Invalidate drops the entry for path and reports whether one existed.
func (c *Cache) Invalidate(path string) bool {
	key, err := ResolvePath(path)
	if err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear drops every entry and returns how many were removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	n := len(c.entries)
	c.entries = make(map[string]*domain.Dataset)
	c.gens = make(map[string]uint64)
	return n
}

// Len returns the number of cached datasets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Loads:   c.loads.Load(),
	}
}
