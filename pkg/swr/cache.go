// Package swr implements a keyed read-through cache with
// stale-while-revalidate semantics: a read always returns the cached value
// immediately when one exists, and a stale value additionally triggers a
// background refresh. Concurrent fetches for the same key share one
// in-flight request.
package swr

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Result describes how a value was served.
type Result struct {
	Value     any
	FetchedAt time.Time
	// Stale reports that the served value had outlived its staleness
	// window; a background refresh has been started.
	Stale bool
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	group   singleflight.Group
	log     *logrus.Logger

	// now is swappable for tests.
	now func() time.Time
}

func New(log *logrus.Logger) *Cache {
	return &Cache{
		entries: map[string]*entry{},
		log:     log,
		now:     time.Now,
	}
}

// Get returns the value for key. On a miss the fetch runs synchronously; on
// a fresh hit the cached value is returned as-is; on a stale hit the cached
// value is returned and the fetch re-runs in the background. The background
// refresh is detached from the caller's cancellation: an abandoned caller
// must not abort a revalidation other readers will benefit from.
func (c *Cache) Get(ctx context.Context, key string, staleAfter time.Duration, fetch FetchFunc) (Result, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		age := c.now().Sub(e.fetchedAt)
		if age <= staleAfter {
			return Result{Value: e.value, FetchedAt: e.fetchedAt}, nil
		}
		c.refreshAsync(ctx, key, fetch)
		return Result{Value: e.value, FetchedAt: e.fetchedAt, Stale: true}, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, FetchedAt: c.fetchedAt(key)}, nil
}

func (c *Cache) refreshAsync(ctx context.Context, key string, fetch FetchFunc) {
	detached := context.WithoutCancel(ctx)
	go func() {
		_, err, _ := c.group.Do(key, func() (any, error) {
			v, err := fetch(detached)
			if err != nil {
				return nil, err
			}
			c.store(key, v)
			return v, nil
		})
		if err != nil && c.log != nil {
			// A failed revalidation keeps serving the stale value.
			c.log.WithError(err).Warnf("swr: background refresh of %q failed", key)
		}
	}()
}

func (c *Cache) store(key string, value any) {
	c.mu.Lock()
	// Values are replaced wholesale, never mutated in place: consumers rely
	// on reference changes to detect new data.
	c.entries[key] = &entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

func (c *Cache) fetchedAt(key string) time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key]; ok {
		return e.fetchedAt
	}
	return time.Time{}
}

// Peek returns the cached value without fetching.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops the entry so the next Get fetches synchronously.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// SetClock overrides the time source. Test hook.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// GetTyped is a typed convenience wrapper around Cache.Get.
func GetTyped[T any](ctx context.Context, c *Cache, key string, staleAfter time.Duration, fetch func(ctx context.Context) (T, error)) (T, Result, error) {
	res, err := c.Get(ctx, key, staleAfter, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, Result{}, err
	}
	v, _ := res.Value.(T)
	return v, res, nil
}
