//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minute-market/internal/handler/middleware"
	"minute-market/internal/pkg/config"
	"minute-market/tests/common/httptest"
)

func newCORSRouter(t *testing.T, cfg config.CORSConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	require.NotPanics(t, func() { r.Use(middleware.NewCORSMiddleware(cfg)) })
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCORS(t *testing.T) {
	t.Run("正常系: テスト設定の許可オリジンにヘッダーを返す", func(t *testing.T) {
		r := newCORSRouter(t, config.NewTestConfig().CORS)

		rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/x", nil, map[string]string{"Origin": "http://localhost:3000"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("異常系: 許可されていないオリジンは拒否される", func(t *testing.T) {
		r := newCORSRouter(t, config.NewTestConfig().CORS)

		rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/x", nil, map[string]string{"Origin": "http://evil.example"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("境界値: オリジン未設定でもパニックせずヘッダーを付けない", func(t *testing.T) {
		r := newCORSRouter(t, config.CORSConfig{})

		rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/x", nil, map[string]string{"Origin": "http://localhost:3000"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("正常系: ワイルドカードは全オリジンを許可し認証情報を無効にする", func(t *testing.T) {
		r := newCORSRouter(t, config.CORSConfig{AllowOrigins: []string{"*"}, AllowMethods: []string{"GET"}, AllowCredentials: true})

		rec := httptest.PerformRawRequest(t, r, http.MethodGet, "/x", nil, map[string]string{"Origin": "http://any.example"})

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}
