// Package cache stores serialized pipeline results behind a small key/value
// interface.
//
// Three backends exist:
//   - [NullCache] never stores anything and disables caching.
//   - [FileCache] keeps entries as JSON files below a directory, for the CLI.
//   - [RedisCache] shares entries between processes through Redis.
//
// Keys are built by a [Keyer] from content hashes, so identical inputs hit
// the same entry regardless of where they came from. Wrap any backend with
// [Instrument] to report hits, misses and writes to the registered
// observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A miss is reported as hit == false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default entry lifetimes.
const (
	// TTLAlignment bounds how long an alignment result is reused.
	TTLAlignment = 7 * 24 * time.Hour

	// TTLGraph bounds how long a constructed graph is reused.
	TTLGraph = 24 * time.Hour
)

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) error
}
