//go:build unit

package identity_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minute-market/internal/domain/user"
	"minute-market/internal/infra/cache"
	"minute-market/internal/infra/identity"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/pkg/jwt"
	"minute-market/internal/usecase/commands"
)

type jwksServer struct {
	srv  *httptest.Server
	mu   sync.Mutex
	keys map[string]*rsa.PrivateKey
	hits atomic.Int32
}

func newJWKSServer(t *testing.T) *jwksServer {
	t.Helper()
	js := &jwksServer{keys: map[string]*rsa.PrivateKey{}}
	js.rotate(t, "k1")
	js.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/jwks.json" {
			http.NotFound(w, r)
			return
		}
		js.hits.Add(1)
		js.mu.Lock()
		defer js.mu.Unlock()
		var keys []map[string]string
		for kid, key := range js.keys {
			keys = append(keys, map[string]string{
				"kty": "RSA",
				"alg": "RS256",
				"use": "sig",
				"kid": kid,
				"n":   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"keys": keys})
	}))
	t.Cleanup(js.srv.Close)
	return js
}

// rotate publishes a new signing key under kid.
func (js *jwksServer) rotate(t *testing.T, kid string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	js.mu.Lock()
	defer js.mu.Unlock()
	js.keys[kid] = key
}

func (js *jwksServer) signWith(t *testing.T, kid string, claims gojwt.MapClaims) string {
	t.Helper()
	js.mu.Lock()
	key := js.keys[kid]
	js.mu.Unlock()
	tok := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func (js *jwksServer) sign(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()
	return js.signWith(t, "k1", claims)
}

func (js *jwksServer) verifier(t *testing.T) *identity.ClerkVerifier {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cfg := config.IdentityConfig{Issuer: js.srv.URL, JWKSTTL: time.Hour, RoleTTL: time.Minute, HTTPTimeout: 5 * time.Second}
	v, err := identity.NewClerkVerifier(ctx, cfg, cache.NewMemoryStore(), nil, js.srv.Client())
	require.NoError(t, err)
	return v
}

func TestClerkVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("metadata role wins", func(t *testing.T) {
		js := newJWKSServer(t)
		token := js.sign(t, gojwt.MapClaims{
			"sub": "user_1", "iss": js.srv.URL, "exp": time.Now().Add(time.Minute).Unix(),
			"email": "one@example.com", "metadata": map[string]any{"role": "admin"},
		})

		id, err := js.verifier(t).Verify(ctx, "Bearer "+token)

		require.NoError(t, err)
		assert.Equal(t, "user_1", id.Subject)
		assert.Equal(t, "one@example.com", id.Email)
		assert.Equal(t, user.RoleAdmin, id.Role)
	})

	t.Run("no metadata and no directory defaults to client", func(t *testing.T) {
		js := newJWKSServer(t)
		token := js.sign(t, gojwt.MapClaims{"sub": "user_2", "iss": js.srv.URL, "exp": time.Now().Add(time.Minute).Unix()})

		id, err := js.verifier(t).Verify(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, user.RoleClient, id.Role)
	})

	t.Run("jwks is fetched once", func(t *testing.T) {
		js := newJWKSServer(t)
		v := js.verifier(t)
		for range 3 {
			token := js.sign(t, gojwt.MapClaims{"sub": "user_3", "iss": js.srv.URL, "exp": time.Now().Add(time.Minute).Unix()})
			_, err := v.Verify(ctx, token)
			require.NoError(t, err)
		}

		assert.Equal(t, int32(1), js.hits.Load())
	})

	t.Run("rotated key is fetched on first use", func(t *testing.T) {
		js := newJWKSServer(t)
		v := js.verifier(t)
		js.rotate(t, "k2")
		token := js.signWith(t, "k2", gojwt.MapClaims{"sub": "user_4", "iss": js.srv.URL, "exp": time.Now().Add(time.Minute).Unix()})

		id, err := v.Verify(ctx, token)

		require.NoError(t, err)
		assert.Equal(t, "user_4", id.Subject)
		assert.Equal(t, int32(2), js.hits.Load())
	})

	t.Run("unknown key id is unauthenticated", func(t *testing.T) {
		js := newJWKSServer(t)
		v := js.verifier(t)
		other := &jwksServer{keys: map[string]*rsa.PrivateKey{}}
		other.rotate(t, "k9")
		token := other.signWith(t, "k9", gojwt.MapClaims{"sub": "x", "iss": js.srv.URL, "exp": time.Now().Add(time.Minute).Unix()})

		_, err := v.Verify(ctx, token)

		assert.True(t, errs.Is(err, identity.ErrInvalidToken))
	})

	t.Run("rejected tokens are unauthenticated", func(t *testing.T) {
		js := newJWKSServer(t)
		hs := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"sub": "x", "iss": js.srv.URL, "exp": time.Now().Add(time.Minute).Unix()})
		hsToken, err := hs.SignedString([]byte("secret"))
		require.NoError(t, err)

		cases := map[string]string{
			"wrong issuer": js.sign(t, gojwt.MapClaims{"sub": "x", "iss": "https://evil.example", "exp": time.Now().Add(time.Minute).Unix()}),
			"expired":      js.sign(t, gojwt.MapClaims{"sub": "x", "iss": js.srv.URL, "exp": time.Now().Add(-time.Hour).Unix()}),
			"no expiry":    js.sign(t, gojwt.MapClaims{"sub": "x", "iss": js.srv.URL}),
			"hs256":        hsToken,
			"garbage":      "not.a.jwt",
		}
		for name, token := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := js.verifier(t).Verify(ctx, token)

				assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
			})
		}
	})

	t.Run("missing bearer", func(t *testing.T) {
		js := newJWKSServer(t)

		_, err := js.verifier(t).Verify(ctx, "Bearer ")

		assert.True(t, errs.Is(err, identity.ErrMissingToken))
	})
}

func TestClerkDirectory(t *testing.T) {
	ctx := context.Background()

	newDirectory := func(t *testing.T, h http.HandlerFunc) *identity.ClerkDirectory {
		srv := httptest.NewServer(h)
		t.Cleanup(srv.Close)
		return identity.NewClerkDirectory(config.IdentityConfig{APIURL: srv.URL, SecretKey: "sk_test"}, srv.Client())
	}

	t.Run("create user returns the subject", func(t *testing.T) {
		var got map[string]any
		d := newDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			assert.Equal(t, "/v1/users", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"id":"user_new","username":"anna","primary_email_address_id":"e1","email_addresses":[{"id":"e1","email_address":"anna@example.com"}]}`))
		})

		u, err := d.CreateUser(ctx, commands.DirectoryUserParams{Email: "anna@example.com", Username: "anna"})

		require.NoError(t, err)
		assert.Equal(t, "user_new", u.Subject)
		assert.Equal(t, "anna@example.com", u.Email)
		assert.Equal(t, true, got["skip_password_requirement"])
		assert.Equal(t, map[string]any{"role": "client"}, got["public_metadata"])
	})

	t.Run("taken username is recognised", func(t *testing.T) {
		d := newDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors":[{"code":"form_identifier_exists","message":"That username is taken.","meta":{"param_name":"username"}}]}`))
		})

		_, err := d.CreateUser(ctx, commands.DirectoryUserParams{Email: "a@example.com", Username: "anna"})

		assert.True(t, errs.Is(err, user.ErrUsernameTaken))
	})

	t.Run("other failures are upstream", func(t *testing.T) {
		d := newDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := d.CreateUser(ctx, commands.DirectoryUserParams{Email: "a@example.com"})

		assert.Equal(t, errs.KindUpstream, errs.KindOf(err))
	})

	t.Run("ensure client role patches only users without a role", func(t *testing.T) {
		var patched atomic.Int32
		d := newDirectory(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.Method == http.MethodGet && r.URL.Path == "/v1/users/user_plain":
				_, _ = w.Write([]byte(`{"id":"user_plain","public_metadata":{}}`))
			case r.Method == http.MethodGet && r.URL.Path == "/v1/users/user_admin":
				_, _ = w.Write([]byte(`{"id":"user_admin","public_metadata":{"role":"admin"}}`))
			case r.Method == http.MethodPatch:
				patched.Add(1)
				assert.Equal(t, "/v1/users/user_plain/metadata", r.URL.Path)
				_, _ = w.Write([]byte(`{}`))
			default:
				http.NotFound(w, r)
			}
		})

		require.NoError(t, d.EnsureClientRole(ctx, "user_plain"))
		require.NoError(t, d.EnsureClientRole(ctx, "user_admin"))

		assert.Equal(t, int32(1), patched.Load())
	})
}

func TestLocalVerifier(t *testing.T) {
	ctx := context.Background()
	svc := jwt.NewService("local-secret", time.Hour)
	v := identity.NewLocalVerifier(svc)

	t.Run("issued tokens round trip", func(t *testing.T) {
		token, err := svc.GenerateToken("local_1", "l@example.com", user.RoleAdmin)
		require.NoError(t, err)

		id, err := v.Verify(ctx, "bearer "+token)

		require.NoError(t, err)
		assert.Equal(t, "local_1", id.Subject)
		assert.Equal(t, user.RoleAdmin, id.Role)
	})

	t.Run("foreign secret is rejected", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken("local_1", "", user.RoleClient)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)

		assert.True(t, errs.Is(err, jwt.ErrInvalidToken))
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := jwt.NewService("local-secret", -time.Minute).GenerateToken("local_1", "", user.RoleClient)
		require.NoError(t, err)

		_, err = v.Verify(ctx, token)

		assert.True(t, errs.Is(err, jwt.ErrExpiredToken))
	})
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", identity.BearerToken("Bearer abc"))
	assert.Equal(t, "abc", identity.BearerToken("  bearer   abc "))
	assert.Equal(t, "abc", identity.BearerToken("abc"))
	assert.Empty(t, identity.BearerToken("Bearer "))
}
