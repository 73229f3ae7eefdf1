package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value      V
	expiresAt  time.Time
	hits       uint64
	lastAccess time.Time
}

// MemoryOptions configures a MemoryCache.
type MemoryOptions struct {
	Capacity int
	TTL      time.Duration
	Policy   EvictionPolicy
	// EvictionFraction is the share of entries dropped when the cache is full.
	EvictionFraction float64
	Now              func() time.Time
}

// MemoryCache is an in-process cache. It is safe for concurrent use.
type MemoryCache[V any] struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry[V]
	capacity int
	ttl      time.Duration
	policy   EvictionPolicy
	fraction float64
	now      func() time.Time
	stats    Stats
}

// NewMemoryCache creates a MemoryCache. Zero options fall back to 100 entries, 30 minutes,
// least-hit eviction of 20% and the wall clock.
func NewMemoryCache[V any](opts MemoryOptions) *MemoryCache[V] {
	if opts.Capacity <= 0 {
		opts.Capacity = 100
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Minute
	}
	if opts.Policy == nil {
		opts.Policy = LeastHit{}
	}
	if opts.EvictionFraction <= 0 || opts.EvictionFraction > 1 {
		opts.EvictionFraction = 0.2
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &MemoryCache[V]{
		entries:  make(map[string]*memoryEntry[V], opts.Capacity),
		capacity: opts.Capacity,
		ttl:      opts.TTL,
		policy:   opts.Policy,
		fraction: opts.EvictionFraction,
		now:      opts.Now,
	}
}

func (c *MemoryCache[V]) Get(_ context.Context, key string) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	now := c.now()
	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return zero, false, nil
	}
	if !now.Before(e.expiresAt) {
		delete(c.entries, key)
		c.stats.Expired++
		c.stats.Misses++
		return zero, false, nil
	}
	e.hits++
	e.lastAccess = now
	c.stats.Hits++
	return e.value, true, nil
}

func (c *MemoryCache[V]) Set(_ context.Context, key string, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = now.Add(c.ttl)
		e.lastAccess = now
		return nil
	}

	if len(c.entries) >= c.capacity {
		c.sweepLocked(now)
	}
	if len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = &memoryEntry[V]{
		value:      value,
		expiresAt:  now.Add(c.ttl),
		lastAccess: now,
	}
	return nil
}

func (c *MemoryCache[V]) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemoryCache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sweepLocked(c.now())
}

// Run sweeps every interval until ctx is done.
func (c *MemoryCache[V]) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				slog.Default().Debug("swept expired cache entries", "removed", removed)
			}
		}
	}
}

// Stats returns the current counters.
func (c *MemoryCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = len(c.entries)
	s.Capacity = c.capacity
	return s
}

func (c *MemoryCache[V]) sweepLocked(now time.Time) int {
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.stats.Expired += uint64(removed)
	return removed
}

func (c *MemoryCache[V]) evictLocked() {
	infos := make([]EntryInfo, 0, len(c.entries))
	for key, e := range c.entries {
		infos = append(infos, EntryInfo{Key: key, Hits: e.hits, LastAccess: e.lastAccess, ExpiresAt: e.expiresAt})
	}
	for _, key := range c.policy.Victims(infos, evictionCount(len(infos), c.fraction)) {
		delete(c.entries, key)
		c.stats.Evictions++
	}
}
