//go:build unit

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"minute-market/internal/handler/middleware"
	"minute-market/internal/pkg/config"
	"minute-market/tests/common/httptest"
)

type countingLimiter struct {
	seen  []string
	allow bool
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	l.seen = append(l.seen, key)
	return l.allow, l.err
}

func newLimitedRouter(limiter middleware.Limiter, enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.RateLimitConfig{Enabled: enabled, Limit: 1, Window: 30 * time.Second}
	r.GET("/x", middleware.RateLimit(limiter, cfg, "public"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed requests pass with an ip key", func(t *testing.T) {
		l := &countingLimiter{allow: true}

		rec := httptest.PerformRequest(t, newLimitedRouter(l, true), http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, l.seen, 1)
		assert.Contains(t, l.seen[0], "public:ip:")
	})

	t.Run("denied requests get 429 and Retry-After", func(t *testing.T) {
		l := &countingLimiter{allow: false}

		rec := httptest.PerformRequest(t, newLimitedRouter(l, true), http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "30"})
	})

	t.Run("limiter errors fail open", func(t *testing.T) {
		l := &countingLimiter{err: errors.New("redis down")}

		rec := httptest.PerformRequest(t, newLimitedRouter(l, true), http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled or missing limiter is a no-op", func(t *testing.T) {
		l := &countingLimiter{allow: false}

		disabled := httptest.PerformRequest(t, newLimitedRouter(l, false), http.MethodGet, "/x", nil, "")
		missing := httptest.PerformRequest(t, newLimitedRouter(nil, true), http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusOK, disabled.Code)
		assert.Equal(t, http.StatusOK, missing.Code)
		assert.Empty(t, l.seen)
	})
}
