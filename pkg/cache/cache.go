// Package cache stores pipeline outputs keyed by input content.
//
// Building a graph or merging a tree is deterministic, so the output for a
// given input document and option set never changes. The pipeline hashes
// the input, derives a key with a [Keyer], and consults a [Cache] before
// doing any work.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several processes or hosts
//   - [NullCache]: caching disabled
//
// Caching is best-effort. Callers log and ignore cache errors; a failing
// backend must never fail a build.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached outputs.
const (
	TTLGraph = 7 * 24 * time.Hour
	TTLTree  = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
