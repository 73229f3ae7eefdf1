package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashrev/internal/config"
)

type snapshot struct {
	IDs   []string  `json:"ids"`
	Taken time.Time `json:"taken"`
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewRedisCache[snapshot](rdb, "flashrev:", 30*time.Minute)

	_, ok, err := c.Get(ctx, "due:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	want := snapshot{IDs: []string{"a", "b"}, Taken: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, c.Set(ctx, "due:u1", want))
	assert.True(t, mr.Exists("flashrev:due:u1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("flashrev:due:u1"))

	got, ok, err := c.Get(ctx, "due:u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(31 * time.Minute)
	_, ok, err = c.Get(ctx, "due:u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "due:u1", want))
	require.NoError(t, c.Delete(ctx, "due:u1", "due:u2"))
	assert.False(t, mr.Exists("flashrev:due:u1"))
	require.NoError(t, c.Delete(ctx))
}

func TestRedisCache_DecodeError(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("p:broken", "{not json"))
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewRedisCache[snapshot](rdb, "p:", time.Minute)
	_, ok, err := c.Get(context.Background(), "broken")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
