package softcache

import (
	"context"
	"fmt"
	"time"

	"github.com/softcache/softcache/internal/jsonx"
	st "github.com/softcache/softcache/store"
	redisstore "github.com/softcache/softcache/store/redis"
)

// scanBatch is the SCAN page size for prefix invalidation. A
// throughput/latency tradeoff, not a correctness requirement.
const scanBatch = 100

type cache[V any] struct {
	cfg Config
	log Logger

	// Connection state. Only Connect and Close mutate it; per-call
	// store failures are absorbed without flipping connected, so a
	// transient error never tears down the handle.
	store     st.Store
	connected bool

	// injected test store, dialed instead of Redis when non-nil
	override st.Store
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Config.KeyPrefix == "" {
		return nil, fmt.Errorf("softcache: key prefix is required")
	}

	c := &cache[V]{
		cfg:      opts.Config,
		override: opts.Store,
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	return c, nil
}

// Connect establishes the store handle and verifies liveness. It never
// fails the process: a disabled config or unreachable store leaves the
// facade unavailable and every operation becomes a cheap no-op.
// Reconnection only happens through another explicit Connect.
func (c *cache[V]) Connect(ctx context.Context) {
	if !c.cfg.Enabled {
		c.log.Info("cache disabled via configuration", nil)
		c.store = nil
		c.connected = false
		return
	}

	handle := c.override
	if handle == nil {
		handle = redisstore.New(redisstore.Config{
			Host:          c.cfg.Host,
			Port:          c.cfg.Port,
			DB:            c.cfg.DB,
			Password:      c.cfg.Password,
			TLS:           c.cfg.TLS,
			SocketTimeout: c.cfg.SocketTimeout,
		})
	}

	if err := handle.Ping(ctx); err != nil {
		// Expected degraded mode, not a fatal condition.
		c.log.Warn("cache store unavailable, continuing without cache", Fields{"err": err})
		_ = handle.Close(ctx)
		c.store = nil
		c.connected = false
		return
	}

	c.store = handle
	c.connected = true
	c.log.Info("cache store connected", Fields{
		"host": c.cfg.Host,
		"port": c.cfg.Port,
		"db":   c.cfg.DB,
	})
}

// Close releases the store handle. Safe before Connect and safe to
// call repeatedly; close errors are logged, never propagated.
func (c *cache[V]) Close(ctx context.Context) {
	if c.store == nil {
		c.connected = false
		return
	}
	if err := c.store.Close(ctx); err != nil {
		c.log.Warn("error closing cache store", Fields{"err": err})
	}
	c.store = nil
	c.connected = false
}

// Available is the single graceful-degradation gate: every operation
// short-circuits to its neutral result when this is false.
func (c *cache[V]) Available() bool {
	return c.cfg.Enabled && c.connected && c.store != nil
}

func (c *cache[V]) Status() Status {
	s := Status{
		Enabled:   c.cfg.Enabled,
		Connected: c.Available(),
		Backend:   Backend,
	}
	if c.cfg.Enabled {
		host, port, db := c.cfg.Host, c.cfg.Port, c.cfg.DB
		s.Host, s.Port, s.DB = &host, &port, &db
	}
	return s
}

func (c *cache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	if !c.Available() {
		return zero, false
	}
	raw, ok, err := c.store.Get(ctx, c.namespaced(key))
	if err != nil {
		c.log.Debug("cache read error", Fields{"key": key, "err": err})
		return zero, false
	}
	if !ok {
		return zero, false
	}
	v, err := jsonx.Decode[V]([]byte(raw))
	if err != nil {
		// Malformed payload reads as a miss, never as a fault.
		c.log.Debug("cache payload parse error", Fields{"key": key, "err": err})
		return zero, false
	}
	return v, true
}

func (c *cache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) bool {
	if !c.Available() {
		return false
	}
	payload, err := jsonx.Encode(value)
	if err != nil {
		c.log.Debug("cache encode error", Fields{"key": key, "err": err})
		return false
	}
	if err := c.store.Set(ctx, c.namespaced(key), string(payload), ttl); err != nil {
		c.log.Debug("cache write error", Fields{"key": key, "err": err})
		return false
	}
	return true
}

func (c *cache[V]) Invalidate(ctx context.Context, key string) {
	if !c.Available() {
		return
	}
	if _, err := c.store.Del(ctx, c.namespaced(key)); err != nil {
		c.log.Debug("cache invalidate error", Fields{"key": key, "err": err})
	}
}

// InvalidatePrefix deletes every key under the namespaced prefix and
// returns the number of keys deleted. On any scan or delete failure it
// returns 0 even though deletes issued before the failure stick - the
// store is partially mutated while the caller is told nothing
// happened. Kept for fidelity with the system this replaces.
func (c *cache[V]) InvalidatePrefix(ctx context.Context, prefix string) int {
	if !c.Available() {
		return 0
	}

	pattern := c.namespaced(prefix) + "*"
	var deleted int64
	var cursor uint64
	for {
		keys, next, err := c.store.Scan(ctx, cursor, pattern, scanBatch)
		if err != nil {
			c.log.Debug("cache prefix scan error", Fields{"prefix": prefix, "err": err})
			return 0
		}
		for _, k := range keys {
			n, err := c.store.Del(ctx, k)
			if err != nil {
				c.log.Debug("cache prefix delete error", Fields{"prefix": prefix, "err": err})
				return 0
			}
			deleted += n
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return int(deleted)
}
