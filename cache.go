package modelgen

import (
	"context"
	"time"
)

// Cache is the interface for caching fetched source documents.
// Users should implement this interface with their preferred storage
// (e.g., an in-memory map, a shared directory on disk).
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// CacheKey identifies one cached source document.
type CacheKey struct {
	Location string // source location (URL or path)
	Shape    string // normalizer name, since one document can normalize differently
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return k.Location + ":" + k.Shape
}
