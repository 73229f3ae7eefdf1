package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/flashrev/internal/config"
)

// NewRedisClient connects to the configured redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// RedisCache stores JSON-encoded values in redis with a fixed TTL. Capacity is left to redis' maxmemory policy.
type RedisCache[V any] struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a RedisCache whose keys are prefixed with prefix.
func NewRedisCache[V any](rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisCache[V] {
	return &RedisCache[V]{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var value V
	data, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return value, false, nil
	}
	if err != nil {
		return value, false, errKey("get", key, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, errKey("decode", key, err)
	}
	return value, true, nil
}

func (c *RedisCache[V]) Set(ctx context.Context, key string, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errKey("encode", key, err)
	}
	if err := c.rdb.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return errKey("set", key, err)
	}
	return nil
}

func (c *RedisCache[V]) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = c.prefix + key
	}
	if err := c.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return errKey("delete", keys[0], err)
	}
	return nil
}
