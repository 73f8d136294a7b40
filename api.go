package softcache

import (
	"context"
	"time"

	st "github.com/softcache/softcache/store"
)

// Backend identifies the store implementation in Status reports.
const Backend = "redis"

// Cache is the high-level facade API. V is the caller's value type;
// use Cache[any] for schemaless JSON payloads.
//
// No method returns an error. Failures degrade to the neutral result
// (miss, false, zero) and are logged through the configured Logger.
type Cache[V any] interface {
	// Connect establishes the store handle and probes liveness.
	// Disabled configs and unreachable stores leave the facade in the
	// degraded (unavailable) state; the process keeps running.
	Connect(ctx context.Context)

	// Close releases the store handle. Safe to call repeatedly and
	// before Connect.
	Close(ctx context.Context)

	// Available reports whether operations will reach the store:
	// enabled, connected, and a live handle.
	Available() bool

	// Status returns a point-in-time report of the facade state.
	Status() Status

	// Key builds a deterministic namespaced key from parts. Pure.
	Key(parts ...any) string

	// Get fetches and decodes the value under key. ok is false on
	// miss, unavailability, store error, or undecodable payload.
	Get(ctx context.Context, key string) (v V, ok bool)

	// Set encodes value as compact ASCII JSON and stores it under key
	// with the given TTL. Returns true only when the write reached the
	// store. Non-positive TTLs are passed through to the store, which
	// rejects them.
	Set(ctx context.Context, key string, value V, ttl time.Duration) bool

	// Invalidate deletes a single key. Fire-and-forget: deleting an
	// absent key and store failures are indistinguishable to callers.
	Invalidate(ctx context.Context, key string)

	// InvalidatePrefix deletes every key under the namespaced prefix
	// and returns the number deleted, or 0 if the facade is
	// unavailable or the scan/delete failed partway.
	InvalidatePrefix(ctx context.Context, prefix string) int
}

// Options tune the facade. Only Config.KeyPrefix is required.
type Options[V any] struct {
	Config Config

	Logger Logger // if nil, NopLogger is used

	// Store overrides the Redis store built from Config. Intended for
	// tests. The facade takes ownership: a failed liveness probe in
	// Connect closes and discards it, as does Close.
	Store st.Store
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
