// Package store defines the key-value store abstraction used by
// softcache. Values are UTF-8 text; expiry is owned entirely by the
// store. Implementations must be safe for concurrent use, the facade
// adds no synchronization of its own.
package store

import (
	"context"
	"time"
)

// Store is a minimal text store with TTLs, pattern scanning, and a
// liveness probe.
type Store interface {
	// Ping probes liveness with a lightweight round-trip.
	Ping(ctx context.Context) error

	// Get returns (value, true, nil) on hit; ("", false, nil) on miss.
	// If an IO/remote error happens, return ("", false, err).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given expiry. TTL semantics,
	// including rejection of non-positive TTLs, are the store's own.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	// Scan enumerates keys matching the wildcard pattern, returning at
	// most about count keys per round plus the cursor for the next
	// round. A returned cursor of 0 means the iteration is complete.
	Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
