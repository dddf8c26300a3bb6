// Package stripe hosts checkout sessions and verifies webhook signatures
// with the Stripe API.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"minute-market/internal/domain/money"
	"minute-market/internal/domain/payment"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/commands"
)

var (
	ErrInvalidSignature = errs.Refine(errs.ErrValidation, "invalid webhook signature")
	ErrInvalidEvent     = errs.Refine(errs.ErrValidation, "malformed webhook event")
)

type Provider struct {
	sessions      *session.Client
	webhookSecret string
	tolerance     time.Duration
}

func NewProvider(cfg config.PaymentConfig, logger *slog.Logger, httpClient *http.Client) *Provider {
	bc := &stripego.BackendConfig{
		HTTPClient:    httpClient,
		LeveledLogger: &leveledLogger{logger: logger},
	}
	if cfg.APIURL != "" {
		bc.URL = stripego.String(cfg.APIURL)
	}
	return &Provider{
		sessions: &session.Client{
			B:   stripego.GetBackendWithConfig(stripego.APIBackend, bc),
			Key: cfg.SecretKey,
		},
		webhookSecret: cfg.WebhookSecret,
		tolerance:     cfg.Tolerance,
	}
}

func (p *Provider) CreateCheckoutSession(ctx context.Context, req commands.CheckoutRequest) (*commands.CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:              stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:        stripego.String(req.SuccessURL),
		CancelURL:         stripego.String(req.CancelURL),
		ClientReferenceID: stripego.String(req.PaymentID.String()),
		LineItems: []*stripego.CheckoutSessionLineItemParams{{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String(req.Item.Currency),
				UnitAmount: stripego.Int64(money.Cents(req.Item.UnitAmount)),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(req.Item.Name),
				},
			},
			Quantity: stripego.Int64(int64(req.Item.Quantity)),
		}},
		PaymentIntentData: &stripego.CheckoutSessionPaymentIntentDataParams{
			Metadata: req.Metadata,
		},
	}
	params.Context = ctx
	params.Metadata = req.Metadata
	// one session per payment row, even when the call is retried
	params.SetIdempotencyKey("checkout-" + req.PaymentID.String())

	s, err := p.sessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "stripe: create checkout session")
	}
	return &commands.CheckoutSession{SessionID: s.ID, URL: s.URL}, nil
}

func (p *Provider) VerifyEvent(payload []byte, signature string) (payment.Event, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                p.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return payment.Event{}, errs.Mark(errs.Wrap(err, "stripe: verify webhook"), ErrInvalidSignature)
	}

	out := payment.Event{ID: ev.ID, Type: payment.EventType(ev.Type)}
	// only checkout session events carry a session object
	if !strings.HasPrefix(string(ev.Type), "checkout.session.") || ev.Data == nil || len(ev.Data.Raw) == 0 {
		return out, nil
	}
	var s stripego.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &s); err != nil {
		return payment.Event{}, errs.Mark(errs.Wrap(err, "stripe: decode checkout session"), ErrInvalidEvent)
	}
	out.SessionID = s.ID
	out.Metadata = s.Metadata
	if s.PaymentIntent != nil {
		out.PaymentRef = s.PaymentIntent.ID
	}
	return out, nil
}

// DisabledProvider answers every call with a configuration error.
type DisabledProvider struct{}

var errDisabled = errs.Mark(errs.New("payments are not configured"), errs.ErrConfiguration)

func (DisabledProvider) CreateCheckoutSession(context.Context, commands.CheckoutRequest) (*commands.CheckoutSession, error) {
	return nil, errDisabled
}

func (DisabledProvider) VerifyEvent([]byte, string) (payment.Event, error) {
	return payment.Event{}, errDisabled
}

type leveledLogger struct {
	logger *slog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *leveledLogger) Infof(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *leveledLogger) Warnf(format string, v ...any) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *leveledLogger) Errorf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "stripe")
}

var (
	_ commands.PaymentProvider = (*Provider)(nil)
	_ commands.PaymentProvider = DisabledProvider{}
)
