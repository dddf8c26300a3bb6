package commands

import (
	"context"

	"github.com/google/uuid"

	"minute-market/internal/domain/payment"
)

type CheckoutRequest struct {
	PaymentID  uuid.UUID
	Item       payment.LineItem
	Metadata   map[string]string
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

// PaymentProvider hosts the checkout page and signs its webhook events.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// VerifyEvent authenticates a raw webhook body; failures are marked errs.ErrValidation.
	VerifyEvent(payload []byte, signature string) (payment.Event, error)
}

// DeviceMessenger delivers a push payload to one device and returns the delivery id.
type DeviceMessenger interface {
	Send(ctx context.Context, deviceToken string, payload map[string]any) (string, error)
}

type DirectoryUserParams struct {
	Email    string
	Password string
	Username string
}

type DirectoryUser struct {
	Subject  string
	Username string
	Email    string
}

// IdentityDirectory manages users at the identity provider.
type IdentityDirectory interface {
	EnsureClientRole(ctx context.Context, subject string) error
	// CreateUser fails with an error matching user.ErrUsernameTaken on a username conflict.
	CreateUser(ctx context.Context, params DirectoryUserParams) (*DirectoryUser, error)
}

// WebhookArchive stores raw provider payloads for external reconciliation.
type WebhookArchive interface {
	Archive(ctx context.Context, eventID string, payload []byte) error
}

// EventMarker remembers provider event ids that were fully processed.
type EventMarker interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}
