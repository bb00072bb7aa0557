package middleware

import (
	"context"
	"errors"
	"time"

	"ingredient-resolver/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout 為請求上下文設定逾時；處理器尚未回應時補上 504
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.Writer.Header().Get("X-Request-ID")),
				zap.Duration("timeout", timeout),
			)
			if !c.Writer.Written() {
				common.RespondError(c, common.ErrGatewayTimeout, false)
			}
		}
	}
}
