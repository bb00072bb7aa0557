package middleware

import (
	"fmt"
	"math"
	"time"

	"ingredient-resolver/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiter 創建令牌桶限流器：每個 window 補滿 requests 個令牌
func NewRateLimiter(requests int, window time.Duration) *rate.Limiter {
	every := window / time.Duration(requests)
	return rate.NewLimiter(rate.Every(every), requests)
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(requests, window)
	retryAfter := int(math.Ceil((window / time.Duration(requests)).Seconds()))

	return func(c *gin.Context) {
		if !limiter.Allow() {
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			common.RespondError(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
