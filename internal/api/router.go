package api

import (
	"time"

	"ingredient-resolver/internal/api/handlers/health"
	ingredientHandler "ingredient-resolver/internal/api/handlers/ingredient"
	"ingredient-resolver/internal/api/middleware"
	"ingredient-resolver/internal/core/cache"
	"ingredient-resolver/internal/infrastructure/config"
	"ingredient-resolver/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；store 為 nil 時不快取解析結果
func SetupRouter(cfg *config.Config, store cache.Store) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		common.RespondError(c, common.ErrNotFound, false)
	})
	router.NoMethod(func(c *gin.Context) {
		common.RespondError(c, common.ErrMethodNotAllowed, false)
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 注入設定與快取
	router.Use(func(c *gin.Context) {
		c.Set("config", cfg)
		if store != nil {
			c.Set("cache_store", store)
		}
		c.Next()
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	handler := ingredientHandler.NewHandler(cfg, store)
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	// API 路由組
	api := router.Group("/api/v1")
	{
		ingredients := api.Group("/ingredients")
		{
			ingredients.POST("/search", handler.HandleSearch)
			ingredients.POST("/resolve", handler.HandleResolve)
			ingredients.POST("/dialog", handler.HandleDialog)
			ingredients.POST("/infer", handler.HandleInfer)
			ingredients.POST("/import", dedup.Middleware(), handler.HandleImport)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int("import_workers", cfg.Import.Workers),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.MaxBodyBytes),
	)

	return router
}
