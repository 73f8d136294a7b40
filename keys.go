package softcache

import (
	"fmt"
	"strings"
)

const keySep = ":"

// namespaced prepends the configured prefix unless key already carries
// it, so namespacing is idempotent.
func (c *cache[V]) namespaced(key string) string {
	if strings.HasPrefix(key, c.cfg.KeyPrefix+keySep) {
		return key
	}
	return c.cfg.KeyPrefix + keySep + key
}

// Key builds a deterministic namespaced key from parts. Each part is
// rendered to its string form, whitespace-trimmed, and has spaces
// replaced with underscores; nil and blank parts are skipped entirely.
// With no usable parts the result is the bare namespaced prefix.
func (c *cache[V]) Key(parts ...any) string {
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(part))
		if s == "" {
			continue
		}
		normalized = append(normalized, strings.ReplaceAll(s, " ", "_"))
	}
	return c.namespaced(strings.Join(normalized, keySep))
}
