package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
)

// Limiter counts requests per key in a sliding window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit limits each authenticated user, or client IP before auth, to
// cfg.Limit requests per cfg.Window. Limiter failures fail open.
func RateLimit(limiter Limiter, cfg config.RateLimitConfig, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !cfg.Enabled {
			c.Next()
			return
		}
		key := scope + ":ip:" + c.ClientIP()
		if uid, ok := GetUserID(c); ok {
			key = scope + ":user:" + uid.String()
		}

		allowed, err := limiter.Allow(c.Request.Context(), key, cfg.Limit, cfg.Window)
		if err != nil {
			slog.Warn("rate limiter unavailable", "key", key, "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "rate limit exceeded", "kind": errs.Kind("rate_limited")},
			})
			return
		}
		c.Next()
	}
}
