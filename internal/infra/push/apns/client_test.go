//go:build unit

package apns

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sideshow/apns2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
)

func testClient(t *testing.T, h http.HandlerFunc) (*Client, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)
	cfg := config.PushConfig{TeamID: "TEAM123", KeyID: "KEY456", BundleID: "com.example.minutes"}
	return newClient(srv.Client(), srv.URL, cfg, key), key
}

func TestSend(t *testing.T) {
	t.Run("voip push with a signed provider token", func(t *testing.T) {
		var got map[string]any
		var c *Client
		var key *ecdsa.PrivateKey
		c, key = testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/3/device/devtoken", r.URL.Path)
			assert.Equal(t, "com.example.minutes.voip", r.Header.Get("apns-topic"))
			assert.Equal(t, "voip", r.Header.Get("apns-push-type"))

			raw := r.Header.Get("authorization")[len("bearer "):]
			tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return &key.PublicKey, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
			assert.NoError(t, err)
			assert.Equal(t, "KEY456", tok.Header["kid"])
			iss, _ := tok.Claims.GetIssuer()
			assert.Equal(t, "TEAM123", iss)

			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("apns-id", "apns-1")
		})

		id, err := c.Send(context.Background(), "devtoken", map[string]any{"type": "sale", "listingId": "l1", "aps": "ignored"})

		require.NoError(t, err)
		assert.Equal(t, "apns-1", id)
		assert.Equal(t, "sale", got["type"])
		assert.Equal(t, map[string]any{"content-available": float64(1)}, got["aps"])
	})

	t.Run("provider token is reused across pushes", func(t *testing.T) {
		var (
			mu      sync.Mutex
			bearers []string
		)
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			bearers = append(bearers, r.Header.Get("authorization"))
			mu.Unlock()
			w.Header().Set("apns-id", "apns-x")
		})

		for range 3 {
			_, err := c.Send(context.Background(), "devtoken", map[string]any{"type": "sale"})
			require.NoError(t, err)
		}

		require.Len(t, bearers, 3)
		assert.NotEmpty(t, bearers[0])
		assert.Equal(t, bearers[0], bearers[1])
		assert.Equal(t, bearers[0], bearers[2])
	})

	t.Run("rejections carry the reason", func(t *testing.T) {
		c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusGone)
			_, _ = w.Write([]byte(`{"reason":"Unregistered"}`))
		})

		_, err := c.Send(context.Background(), "stale", nil)

		assert.True(t, errs.Is(err, ErrDelivery))
		assert.Equal(t, errs.KindUpstream, errs.KindOf(err))
		assert.Contains(t, err.Error(), "Unregistered")
	})
}

func TestNewClient(t *testing.T) {
	t.Run("bad key is a configuration error", func(t *testing.T) {
		_, err := NewClient(config.PushConfig{PrivateKey: "not a pem"})

		assert.True(t, errs.Is(err, errs.ErrConfiguration))
	})

	t.Run("pkcs8 key selects the sandbox host", func(t *testing.T) {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalPKCS8PrivateKey(key)
		require.NoError(t, err)
		pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

		c, err := NewClient(config.PushConfig{PrivateKey: string(pemKey), Sandbox: true, BundleID: "com.example.minutes"})

		require.NoError(t, err)
		assert.Equal(t, apns2.HostDevelopment, c.apns.Host)
		assert.Equal(t, "com.example.minutes.voip", c.topic)
	})
}

func TestLogMessenger(t *testing.T) {
	m := NewLogMessenger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	id, err := m.Send(context.Background(), "abcdefghijkl", map[string]any{"type": "sale"})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, "abcd…ijkl", redact("abcdefghijkl"))
	assert.Equal(t, "****", redact("short"))
}
