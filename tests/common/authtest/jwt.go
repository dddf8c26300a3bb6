//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"minute-market/internal/domain/user"
	"minute-market/internal/handler/dto/response"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/jwt"
	"minute-market/tests/common/httptest"
)

// JWTHelper issues tokens accepted by the local identity verifier.
type JWTHelper struct {
	cfg config.IdentityConfig
}

func NewJWTHelper(cfg config.IdentityConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, subject string, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.LocalSecret, h.cfg.LocalDuration)
	token, err := service.GenerateToken(subject, subject+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, subject string, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.LocalSecret, time.Millisecond)
	token, err := service.GenerateToken(subject, subject+"@example.com", role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}

// SignIn issues a token for subject and syncs the account, returning the
// token and the local user id.
func (h *JWTHelper) SignIn(t *testing.T, router *gin.Engine, subject string, role user.Role) (string, uuid.UUID) {
	t.Helper()
	token := h.GenerateToken(t, subject, role)

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/account/sync", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res response.SyncUserResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return token, res.UserID
}
