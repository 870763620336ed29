// Package querycache is a read-through cache for user-scoped query
// results. Entries are keyed by entity, user, and scope, stay valid
// until a mutation explicitly invalidates them, and are fetched at
// most once per key no matter how many readers arrive concurrently.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache holds query results keyed by "entity:userID[:scope]".
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
	// version advances on every invalidation. It is folded into the
	// singleflight key so readers arriving after an invalidation never
	// join a fetch started before it, and a fetch that raced an
	// invalidation cannot store its stale result.
	version uint64

	group singleflight.Group
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Key builds a cache key from an entity name, owning user, and
// optional scope parameters (e.g. a date for day-scoped queries).
func Key(entity string, userID uint, scope ...string) string {
	key := fmt.Sprintf("%s:%d", entity, userID)
	if len(scope) > 0 {
		key += ":" + strings.Join(scope, ":")
	}
	return key
}

// Fetch returns the cached value for key, or runs fetch and caches the
// result. Concurrent callers for the same key share a single fetch.
// Errors propagate to every waiting caller and are never cached, so
// the previous entry (if any) survives a failed refetch. A caller
// whose context is canceled stops waiting, but the shared fetch runs
// to completion for the remaining subscribers.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.RLock()
	cached, ok := c.entries[key]
	version := c.version
	c.mu.RUnlock()
	if ok {
		return cached.(T), nil
	}

	flightKey := fmt.Sprintf("%s@%d", key, version)
	ch := c.group.DoChan(flightKey, func() (any, error) {
		// Detached from any single caller's context.
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.version == version {
			c.entries[key] = v
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek returns the cached value for key without fetching.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Invalidate drops every entry whose key starts with prefix. There is
// no time-based expiry; this is the only way entries leave the cache.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.version++
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
