package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/flashrev/internal/config"
)

// FromConfig builds the configured backend. The returned func releases its connections.
func FromConfig[V any](ctx context.Context, cfg config.CacheConfig) (Cache[V], func() error, error) {
	noop := func() error { return nil }
	ttl := time.Duration(cfg.TTLSeconds) * time.Second

	switch cfg.Backend {
	case config.CacheBackendNone:
		return Noop[V]{}, noop, nil
	case config.CacheBackendRedis:
		rdb, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("NewRedisClient() > %w", err)
		}
		return NewRedisCache[V](rdb, cfg.Redis.KeyPrefix, ttl), rdb.Close, nil
	case config.CacheBackendMemory, "":
		policy, err := ParsePolicy(cfg.EvictionPolicy)
		if err != nil {
			return nil, nil, err
		}
		return NewMemoryCache[V](MemoryOptions{
			Capacity:         cfg.Capacity,
			TTL:              ttl,
			Policy:           policy,
			EvictionFraction: cfg.EvictionFraction,
		}), noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
}
