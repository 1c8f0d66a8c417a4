// Package ratecache provides a short-TTL, read-through cache in front of the
// rate store's read API. It caches the full rate table as one snapshot, not
// per-pair entries, because the typical consumer renders multiple prices on
// one screen and needs the whole table anyway.
package ratecache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads a fresh table from the upstream read API. It must honor the
// context deadline so a slow upstream fails instead of hanging the cache.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Option configures a Cache.
type Option[T any] func(*Cache[T])

// WithClock overrides the cache clock, used by tests.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) {
		c.now = now
	}
}

// Cache is a whole-table snapshot cache. Concurrent callers hitting an
// expired window collapse into a single upstream fetch; a failed refresh
// keeps the last-good snapshot in place.
type Cache[T any] struct {
	fetch FetchFunc[T]
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	table    T
	cachedAt time.Time
	hasValue bool
}

// New creates a cache over the given fetch function with the given TTL.
func New[T any](fetch FetchFunc[T], ttl time.Duration, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached table while it is within TTL; otherwise it performs
// one coalesced upstream fetch, replaces the snapshot and returns the new
// table. When the fetch fails, Get returns the last-good (possibly stale)
// snapshot together with the fetch error; the caller decides whether stale
// data is acceptable.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	c.mu.RLock()
	if c.hasValue && c.now().Sub(c.cachedAt) < c.ttl {
		table := c.table
		c.mu.RUnlock()
		return table, nil
	}
	c.mu.RUnlock()

	// All expired-window callers share this one in-flight fetch.
	result, err, _ := c.group.Do("rates", func() (interface{}, error) {
		// Another caller may have refreshed while this one waited on the
		// singleflight slot.
		c.mu.RLock()
		if c.hasValue && c.now().Sub(c.cachedAt) < c.ttl {
			table := c.table
			c.mu.RUnlock()
			return table, nil
		}
		c.mu.RUnlock()

		table, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.table = table
		c.cachedAt = c.now()
		c.hasValue = true
		c.mu.Unlock()

		return table, nil
	})

	if err != nil {
		// Surface the error but keep serving the last-good snapshot.
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.table, err
	}

	return result.(T), nil
}

// Invalidate forces the next Get to bypass the TTL check. The current
// snapshot stays available as the last-good fallback.
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	c.cachedAt = time.Time{}
	c.mu.Unlock()
}

// CachedAt reports when the current snapshot was taken, zero if none.
func (c *Cache[T]) CachedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasValue {
		return time.Time{}
	}
	return c.cachedAt
}
