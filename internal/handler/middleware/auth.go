package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"minute-market/internal/domain/user"
	"minute-market/internal/handler/httperr"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
)

var (
	ErrAdminOnly       = errs.Refine(errs.ErrForbidden, "admin role required")
	ErrSubjectMismatch = errs.Refine(errs.ErrForbidden, "user id does not match the authenticated user")
)

type AuthMiddleware struct {
	verifier usecase.IdentityVerifier
	resolver usecase.PrincipalResolver
}

const (
	ctxPrincipalKey = "principal"
	ctxIdentityKey  = "identity"

	headerClerkAuthorization = "X-Clerk-Authorization"
)

func NewAuthMiddleware(verifier usecase.IdentityVerifier, resolver usecase.PrincipalResolver) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		resolver: resolver,
	}
}

// RequireAuth verifies the bearer token and resolves the local user. The
// Clerk-specific header wins over Authorization when both are sent.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader(headerClerkAuthorization)
		if bearer == "" {
			bearer = c.GetHeader("Authorization")
		}

		id, err := m.verifier.Verify(c.Request.Context(), bearer)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.FromError(c, err)
			return
		}

		p, err := m.resolver.Resolve(c.Request.Context(), id)
		if err != nil {
			httperr.FromError(c, err)
			return
		}

		c.Set(ctxIdentityKey, id)
		c.Set(ctxPrincipalKey, p)
		c.Set("jwt_claims", map[string]any{
			"user_id": p.UserID.String(),
			"role":    p.Role.String(),
		})
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			return
		}
		if p.Role != role {
			httperr.FromError(c, ErrAdminOnly)
			return
		}
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (usecase.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return usecase.Principal{}, false
	}
	p, ok := v.(usecase.Principal)
	return p, ok
}

func GetIdentity(c *gin.Context) (usecase.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return usecase.Identity{}, false
	}
	id, ok := v.(usecase.Identity)
	return id, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, false
	}
	return p.UserID, true
}

// CheckClaimedUser rejects a request body that names a different user than
// the token. An empty claim is accepted; both the identity subject and the
// local user id are valid spellings.
func CheckClaimedUser(c *gin.Context, claimed string) error {
	if claimed == "" {
		return nil
	}
	p, ok := GetPrincipal(c)
	if !ok {
		return errs.ErrUnauthenticated
	}
	if claimed == p.Subject || claimed == p.UserID.String() {
		return nil
	}
	return ErrSubjectMismatch
}
