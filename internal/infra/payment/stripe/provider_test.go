//go:build unit

package stripe_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"minute-market/internal/domain/payment"
	"minute-market/internal/infra/payment/stripe"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

const webhookSecret = "whsec_test"

func newProvider(apiURL string, client *http.Client) *stripe.Provider {
	cfg := config.PaymentConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: webhookSecret,
		APIURL:        apiURL,
		Tolerance:     5 * time.Minute,
	}
	return stripe.NewProvider(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), client)
}

func signed(t *testing.T, payload string, at time.Time) string {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    webhookSecret,
		Timestamp: at,
	})
	return sp.Header
}

func TestVerifyEvent(t *testing.T) {
	p := newProvider("", nil)
	paymentID := uuid.New()
	payload := `{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"payment_intent": "pi_1",
			"metadata": {"paymentId": "` + paymentID.String() + `", "type": "treasury"}
		}}
	}`

	t.Run("signed events decode the session", func(t *testing.T) {
		ev, err := p.VerifyEvent([]byte(payload), signed(t, payload, time.Now()))

		require.NoError(t, err)
		assert.Equal(t, "evt_1", ev.ID)
		assert.Equal(t, payment.EventCheckoutCompleted, ev.Type)
		assert.Equal(t, "cs_test_1", ev.SessionID)
		assert.Equal(t, "pi_1", ev.PaymentRef)
		got, ok := ev.PaymentID()
		assert.True(t, ok)
		assert.Equal(t, paymentID, got)
	})

	t.Run("tampered payload", func(t *testing.T) {
		sig := signed(t, payload, time.Now())

		_, err := p.VerifyEvent([]byte(payload+" "), sig)

		assert.True(t, errs.Is(err, stripe.ErrInvalidSignature))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("stale timestamp", func(t *testing.T) {
		_, err := p.VerifyEvent([]byte(payload), signed(t, payload, time.Now().Add(-time.Hour)))

		assert.True(t, errs.Is(err, stripe.ErrInvalidSignature))
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := p.VerifyEvent([]byte(payload), "")

		assert.True(t, errs.Is(err, stripe.ErrInvalidSignature))
	})

	// an object whose metadata is not a map cannot decode as a session
	odd := func(typ string) string {
		return `{"id": "evt_2", "object": "event", "type": "` + typ + `",
			"data": {"object": {"id": "ch_1", "object": "charge", "metadata": "n/a"}}}`
	}

	t.Run("other event types are passed through undecoded", func(t *testing.T) {
		body := odd("charge.refunded")

		ev, err := p.VerifyEvent([]byte(body), signed(t, body, time.Now()))

		require.NoError(t, err)
		assert.Equal(t, "evt_2", ev.ID)
		assert.Equal(t, payment.EventType("charge.refunded"), ev.Type)
		assert.Empty(t, ev.SessionID)
		_, ok := ev.PaymentID()
		assert.False(t, ok)
	})

	t.Run("malformed session object", func(t *testing.T) {
		body := odd("checkout.session.completed")

		_, err := p.VerifyEvent([]byte(body), signed(t, body, time.Now()))

		assert.True(t, errs.Is(err, stripe.ErrInvalidEvent))
	})
}

func TestCreateCheckoutSession(t *testing.T) {
	paymentID := uuid.New()
	req := commands.CheckoutRequest{
		PaymentID:  paymentID,
		Item:       payment.LineItem{Name: "60-minute token", Currency: "eur", UnitAmount: decimal.RequireFromString("4.99"), Quantity: 3},
		Metadata:   map[string]string{payment.MetaPaymentID: paymentID.String()},
		SuccessURL: "https://app.example/success",
		CancelURL:  "https://app.example/cancel",
	}

	t.Run("session is created with amounts in cents", func(t *testing.T) {
		var form url.Values
		var idem string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			idem = r.Header.Get("Idempotency-Key")
			require.NoError(t, r.ParseForm())
			form = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_test_9","object":"checkout.session","url":"https://checkout.example/cs_test_9"}`))
		}))
		defer srv.Close()

		s, err := newProvider(srv.URL, srv.Client()).CreateCheckoutSession(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "cs_test_9", s.SessionID)
		assert.Equal(t, "https://checkout.example/cs_test_9", s.URL)
		assert.Equal(t, "checkout-"+paymentID.String(), idem)
		assert.Equal(t, "499", form.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "3", form.Get("line_items[0][quantity]"))
		assert.Equal(t, paymentID.String(), form.Get("metadata[paymentId]"))
		assert.Equal(t, paymentID.String(), form.Get("client_reference_id"))
	})

	t.Run("api errors are returned", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid currency"}}`))
		}))
		defer srv.Close()

		_, err := newProvider(srv.URL, srv.Client()).CreateCheckoutSession(context.Background(), req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid currency")
	})
}

func TestDisabledProvider(t *testing.T) {
	_, err := stripe.DisabledProvider{}.CreateCheckoutSession(context.Background(), commands.CheckoutRequest{})
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))

	_, err = stripe.DisabledProvider{}.VerifyEvent(nil, "")
	assert.Equal(t, errs.KindConfiguration, errs.KindOf(err))
}
