package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"ingredient-resolver/internal/infrastructure/config"
	"ingredient-resolver/internal/pkg/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	cfg := &config.Config{
		Cache: config.CacheConfig{Enabled: true, Backend: config.CacheBackendRedis, TTL: time.Minute},
		Redis: config.RedisConfig{Addr: addr, KeyPrefix: "ingredient:test:" + uuid.NewString() + ":"},
	}
	store, err := NewRedisStore(cfg)
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	_, err = store.Get(ctx, "k")
	assert.True(t, errors.Is(err, common.ErrCacheMiss))

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(data))

	stats := store.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}
