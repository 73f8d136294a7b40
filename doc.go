// Package softcache is a resilient caching facade over a remote Redis
// store. Values are stored as compact, ASCII-safe JSON text with a TTL;
// keys are namespaced under a configurable prefix; bulk invalidation
// walks the keyspace by prefix pattern.
//
// The central contract is graceful degradation: no operation ever
// returns an error to the caller. If the store is unreachable (at
// Connect time or per call), reads report a miss, writes report false,
// and invalidations report nothing happened. A broken cache must only
// cost the caller performance, never correctness.
//
// Components:
//   - Cache[V]: the facade. Connect/Close manage the single owned store
//     handle; every other operation short-circuits when unavailable.
//   - store.Store: minimal text store with TTLs, pattern scan, and a
//     liveness probe (Redis by default, substitutable for tests).
//   - Logger: tiny leveled logger with zap, logrus, and slog adapters
//     under log/.
//
// Keys:
//
//	<prefix>:<part>:<part>...  - parts trimmed, blanks skipped,
//	                             spaces replaced with underscores
//
// A key already carrying the prefix is never re-prefixed.
package softcache
