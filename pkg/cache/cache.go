// Package cache defines the snapshot cache contract. Implementations live
// under infra/cache.
package cache

import (
	"context"
	"time"
)

// Cache stores serialized values under string keys with a TTL.
type Cache interface {
	// Get returns the cached bytes for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
