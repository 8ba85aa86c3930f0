// Package cache provides in-memory and Redis implementations of the cache
// interface used for balance snapshots.
package cache

import (
	"context"
	"sync"
	"time"

	pkgcache "github.com/TeamSorcerers/app-financeiro-sub000/pkg/cache"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache implements Cache using in-memory storage. Suitable for
// single-process deployments and tests.
type MemoryCache struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
	}
	go c.cleanup()
	return c
}

// Get retrieves a value from cache. Returns nil when absent or expired.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.value, nil
}

// Set stores a value in cache with a TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value from cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, entry := range c.entries {
			if now.After(entry.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}

var _ pkgcache.Cache = (*MemoryCache)(nil)
