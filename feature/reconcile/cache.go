package reconcile

import (
	"context"
	"sync"
	"time"

	engine "mailrecon/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// loadFunc reads every item of a location.
type loadFunc func(ctx context.Context, location string) ([]engine.Item, error)

// cachedSource is one loaded location.
type cachedSource struct {
	items []engine.Item
	built time.Time
}

// sourceCache shares source loads between requests. Concurrent loads of the
// same location run once; finished loads are kept for ttl. Cached item slices
// are shared and must be treated as read-only.
type sourceCache struct {
	mu      sync.RWMutex
	entries map[string]cachedSource
	sf      singleflight.Group
	ttl     time.Duration
	load    loadFunc
	now     func() time.Time
}

func newSourceCache(ttl time.Duration, load loadFunc) *sourceCache {
	return &sourceCache{
		entries: make(map[string]cachedSource),
		ttl:     ttl,
		load:    load,
		now:     time.Now,
	}
}

func (c *sourceCache) fresh(location string) ([]engine.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[location]
	if !ok || c.ttl == 0 || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.items, true
}

// Get returns the items of location, loading them when needed. The shared
// load is detached from ctx so one cancelled caller does not fail the others;
// each caller still stops waiting when its own ctx ends.
func (c *sourceCache) Get(ctx context.Context, location string) ([]engine.Item, error) {
	if items, ok := c.fresh(location); ok {
		return items, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(location, func() (any, error) {
		if items, ok := c.fresh(location); ok {
			return items, nil
		}

		items, err := c.load(loadCtx, location)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[location] = cachedSource{items: items, built: c.now()}
			c.mu.Unlock()
		}
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]engine.Item), nil
	}
}

// Invalidate drops location from the cache.
func (c *sourceCache) Invalidate(location string) {
	c.mu.Lock()
	delete(c.entries, location)
	c.mu.Unlock()
}
