// Package cache provides capacity-bounded, TTL-aware caches used for read-side snapshots.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Cache stores values of type V by key. A miss is reported as ok == false, not as an error.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (value V, ok bool, err error)
	Set(ctx context.Context, key string, value V) error
	Delete(ctx context.Context, keys ...string) error
}

// Stats is a point-in-time view of a cache's counters.
type Stats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
}

// Utilization returns Size as a percentage of Capacity.
func (s Stats) Utilization() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity) * 100
}

// Noop never stores anything.
type Noop[V any] struct{}

func (Noop[V]) Get(context.Context, string) (V, bool, error) {
	var zero V
	return zero, false, nil
}

func (Noop[V]) Set(context.Context, string, V) error {
	return nil
}

func (Noop[V]) Delete(context.Context, ...string) error {
	return nil
}

// Key joins parts with ':' for namespaced cache keys.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

func errKey(op, key string, err error) error {
	return fmt.Errorf("cache %s %q: %w", op, key, err)
}
