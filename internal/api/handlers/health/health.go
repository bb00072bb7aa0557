package health

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"ingredient-resolver/internal/core/cache"
	"ingredient-resolver/internal/infrastructure/config"
	"ingredient-resolver/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readyProbeTimeout 就緒檢查的快取探測逾時
const readyProbeTimeout = time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, ok := configFrom(c)
	if !ok {
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if store := storeFrom(c); store != nil {
		response.Cache = store.Stats()
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器：快取開啟時需可讀取
func ReadinessCheck(c *gin.Context) {
	store := storeFrom(c)
	if store == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "cache": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readyProbeTimeout)
	defer cancel()

	if _, err := store.Get(ctx, "readiness-probe"); err != nil && !errors.Is(err, common.ErrCacheMiss) {
		common.LogWarn("Cache not ready", zap.Error(err))
		common.RespondError(c, common.ErrServiceUnavailable.Wrap(err), false)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "cache": store.Stats()["backend"]})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func configFrom(c *gin.Context) (*config.Config, bool) {
	value, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		common.RespondError(c, common.ErrInternalError, false)
		return nil, false
	}
	cfg, ok := value.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		common.RespondError(c, common.ErrInternalError, false)
		return nil, false
	}
	return cfg, true
}

func storeFrom(c *gin.Context) cache.Store {
	value, exists := c.Get("cache_store")
	if !exists {
		return nil
	}
	store, _ := value.(cache.Store)
	return store
}
