package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"ingredient-resolver/internal/infrastructure/config"
	"ingredient-resolver/internal/pkg/common"
)

// Store 解析結果快取介面，未命中時回傳 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Stats() map[string]interface{}
	Close() error
}

// NewStore 依設定建立快取；快取關閉時回傳 nil
func NewStore(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheBackendMemory:
		return NewManager(cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// Key 將任意可序列化的參數組成快取鍵
func Key(namespace string, parts ...interface{}) (string, error) {
	data, err := common.ToJSON(parts)
	if err != nil {
		return "", fmt.Errorf("failed to build cache key: %w", err)
	}
	hash := sha256.Sum256(data)
	return namespace + ":" + hex.EncodeToString(hash[:]), nil
}
