package cache

import (
	"context"
	"sync"
	"time"

	"calorielens/internal/domain"
)

// cacheItem is one memoized lookup result with its expiration
type cacheItem struct {
	result     domain.LookupResult
	expiration time.Time
}

// MemoryCache memoizes lookup results for the duration of one run so
// duplicate catalog names do not hit the APIs twice. Entries expire
// lazily on read; nothing survives the process.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory lookup cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]cacheItem),
	}
}

// Get retrieves a memoized result
func (c *MemoryCache) Get(ctx context.Context, key string) (domain.LookupResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return domain.LookupResult{}, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return domain.LookupResult{}, domain.ErrCacheMiss
	}

	return item.result, nil
}

// Set memoizes a lookup result with a TTL
func (c *MemoryCache) Set(ctx context.Context, key string, result domain.LookupResult, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		result:     result,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a memoized result
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of memoized results
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}
