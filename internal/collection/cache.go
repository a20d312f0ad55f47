package collection

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// Cache is a read-through projection of authority data. It is never a
// source of truth: callers invalidate after every mutation, and a zero
// maxAge keeps entries until then.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
	// generation is bumped on invalidation so a load that started earlier
	// does not store what it read.
	generation map[string]uint64
	group      singleflight.Group
	maxAge     time.Duration
	now        func() time.Time
}

func NewCache[T any](maxAge time.Duration) *Cache[T] {
	return &Cache[T]{
		entries:    make(map[string]entry[T]),
		generation: make(map[string]uint64),
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Get returns the cached value for key, loading it when missing or stale.
// Concurrent misses for the same key share one load. Cancelling ctx only
// abandons this caller's wait.
func (c *Cache[T]) Get(ctx context.Context, key string, load func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && (c.maxAge <= 0 || c.now().Sub(e.fetchedAt) < c.maxAge) {
		c.mu.Unlock()
		return e.value, nil
	}
	gen := c.generation[key]
	c.mu.Unlock()

	// The shared load must not die with whichever caller started it; each
	// caller stops waiting on its own context instead.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		value, err := load(loadCtx)
		if err != nil {
			return value, err
		}

		c.mu.Lock()
		if c.generation[key] == gen {
			c.entries[key] = entry[T]{value: value, fetchedAt: c.now()}
		}
		c.mu.Unlock()
		return value, nil
	})

	var zero T
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

// Invalidate drops keys and detaches any load in flight for them.
func (c *Cache[T]) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
		c.generation[key]++
		c.group.Forget(key)
	}
}

// Len reports the number of cached entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
