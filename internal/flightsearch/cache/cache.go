package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a TTL key/value cache. A miss, an expired entry and a backend
// failure all report ok == false.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is the in-process Store. Values are cloned on the way in and out so
// callers never share slices with the cache.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
}

func New[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     time.Now,
	}
}

func (c *Cache[T]) Get(_ context.Context, key string) (T, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().After(entry.expiry) {
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && current.expiry.Equal(entry.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return c.cloneValue(entry.value), true
}

func (c *Cache[T]) Set(_ context.Context, key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: c.now().Add(ttl)}
	c.mu.Unlock()
}

func (c *Cache[T]) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache[T]) Purge() int {
	now := c.now()
	removed := 0
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

// Janitor purges expired entries every interval until ctx is done.
func (c *Cache[T]) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				c.Purge()
			}
		}
	}()
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}
