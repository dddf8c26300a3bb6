// Package identity verifies bearer tokens and manages users at the identity
// provider. Clerk is used in production; local mode signs HS256 tokens itself.
package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"minute-market/internal/domain/user"
	"minute-market/internal/infra/cache"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
)

var (
	ErrMissingToken = errs.Refine(errs.ErrUnauthenticated, "missing bearer token")
	ErrInvalidToken = errs.Refine(errs.ErrUnauthenticated, "invalid token")
)

// an unknown kid refetches the key set at most this often
const unknownKIDRefresh = time.Minute

type cachedRole struct {
	Role  user.Role `json:"role"`
	Email string    `json:"email"`
}

type sessionClaims struct {
	Email    string         `json:"email,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	jwt.RegisteredClaims
}

// ClerkVerifier checks RS256 session tokens against the issuer's JWKS. The
// role comes from the user's public_metadata, cached for RoleTTL.
type ClerkVerifier struct {
	issuer    string
	keys      keyfunc.Keyfunc
	store     cache.Store
	directory *ClerkDirectory
	roleTTL   time.Duration
}

// NewClerkVerifier loads the issuer's JWKS and keeps refreshing it every
// JWKSTTL until ctx is done. A failed first fetch is retried on demand.
func NewClerkVerifier(ctx context.Context, cfg config.IdentityConfig, store cache.Store, directory *ClerkDirectory, httpClient *http.Client) (*ClerkVerifier, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	issuer := strings.TrimRight(cfg.Issuer, "/")
	jwksURL := issuer + "/.well-known/jwks.json"

	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    httpClient,
		Ctx:                       ctx,
		HTTPTimeout:               cfg.HTTPTimeout,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           cfg.JWKSTTL,
		RefreshErrorHandler: func(ctx context.Context, err error) {
			slog.ErrorContext(ctx, "JWKSの更新に失敗しました", "url", jwksURL, "error", err)
		},
	})
	if err != nil {
		return nil, errs.Wrap(err, "clerk: jwks storage")
	}
	client, err := jwkset.NewHTTPClient(jwkset.HTTPClientOptions{
		HTTPURLs:          map[string]jwkset.Storage{jwksURL: storage},
		RateLimitWaitMax:  time.Second,
		RefreshUnknownKID: rate.NewLimiter(rate.Every(unknownKIDRefresh), 1),
	})
	if err != nil {
		return nil, errs.Wrap(err, "clerk: jwks client")
	}
	keys, err := keyfunc.New(keyfunc.Options{Ctx: ctx, Storage: client})
	if err != nil {
		return nil, errs.Wrap(err, "clerk: keyfunc")
	}

	return &ClerkVerifier{
		issuer:    issuer,
		keys:      keys,
		store:     store,
		directory: directory,
		roleTTL:   cfg.RoleTTL,
	}, nil
}

func (v *ClerkVerifier) Verify(ctx context.Context, bearer string) (usecase.Identity, error) {
	raw := BearerToken(bearer)
	if raw == "" {
		return usecase.Identity{}, ErrMissingToken
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, v.keys.KeyfuncCtx(ctx),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return usecase.Identity{}, errs.Mark(errs.Wrap(err, "clerk: verify session token"), ErrInvalidToken)
	}
	if !parsed.Valid || claims.Subject == "" {
		return usecase.Identity{}, ErrInvalidToken
	}

	id := usecase.Identity{Subject: claims.Subject, Email: claims.Email, Role: user.RoleClient}
	if r, ok := metadataRole(claims.Metadata); ok {
		id.Role = r
		return id, nil
	}
	cr, err := v.role(ctx, claims.Subject)
	if err != nil {
		return usecase.Identity{}, err
	}
	id.Role = cr.Role
	if id.Email == "" {
		id.Email = cr.Email
	}
	return id, nil
}

func metadataRole(md map[string]any) (user.Role, bool) {
	raw, _ := md["role"].(string)
	r, err := user.NewRole(raw)
	return r, err == nil
}

func (v *ClerkVerifier) role(ctx context.Context, subject string) (cachedRole, error) {
	key := "clerk:role:" + subject
	if b, ok, err := v.store.Get(ctx, key); err == nil && ok {
		var cr cachedRole
		if json.Unmarshal(b, &cr) == nil && cr.Role != "" {
			return cr, nil
		}
	}
	if v.directory == nil {
		return cachedRole{Role: user.RoleClient}, nil
	}
	u, err := v.directory.getUser(ctx, subject)
	if err != nil {
		return cachedRole{}, errs.Wrap(err, "clerk: load user role")
	}
	cr := cachedRole{Role: user.RoleClient, Email: u.primaryEmail()}
	if r, ok := u.role(); ok {
		cr.Role = r
	}
	if b, err := json.Marshal(cr); err == nil {
		_ = v.store.Set(ctx, key, b, v.roleTTL)
	}
	return cr, nil
}

// BearerToken strips an optional "Bearer " prefix.
func BearerToken(header string) string {
	h := strings.TrimSpace(header)
	if len(h) >= 6 && strings.EqualFold(h[:6], "bearer") && (len(h) == 6 || h[6] == ' ') {
		h = h[6:]
	}
	return strings.TrimSpace(h)
}

var _ usecase.IdentityVerifier = (*ClerkVerifier)(nil)
