// Package cache stores search results so repeated benchmark runs over the
// same corpus can skip graphs whose result is already known.
//
// A result is keyed by the content hash of the graph together with the trial
// count and the seed. The trial worker count is not part of the key since
// parallel trials reproduce the sequential result. See [Keyer].
//
// Three backends implement [Cache]: [FileCache] for local CLI use,
// [RedisCache] for a shared cache between machines, and [NullCache] to
// disable caching, which is the default for timing-sensitive runs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss returns hit=false and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// TTLSearch is how long a search result stays cached.
const TTLSearch = 30 * 24 * time.Hour
