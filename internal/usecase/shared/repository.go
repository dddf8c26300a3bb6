package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/device"
	"minute-market/internal/domain/ledger"
	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/payment"
	"minute-market/internal/domain/settings"
	"minute-market/internal/domain/token"
	"minute-market/internal/domain/trade"
	"minute-market/internal/domain/user"
)

type UserRepository interface {
	// Ensure inserts u unless its subject exists, refreshing email and role,
	// and returns the stored user.
	Ensure(ctx context.Context, u *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindBySubject(ctx context.Context, subject string) (*user.User, error)
	// Lock takes a row lock on the user for the rest of the transaction.
	Lock(ctx context.Context, id uuid.UUID) error
}

type SettingsRepository interface {
	Get(ctx context.Context) (settings.Settings, error)
	SetPrice(ctx context.Context, price decimal.Decimal, now time.Time) (settings.Settings, error)
}

type TokenRepository interface {
	Get(ctx context.Context, id uuid.UUID) (token.Token, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (token.Token, error)
	// FindPurchasable returns up to limit treasury tokens of year, oldest first.
	FindPurchasable(ctx context.Context, year, limit int) ([]token.Token, error)
	CountPurchasable(ctx context.Context, year int) (int, error)
	CountHeld(ctx context.Context, holder uuid.UUID, year int, statuses []token.Status) (int, error)
	ActiveMinutes(ctx context.Context, holder uuid.UUID) (int, error)
	// Apply performs the transition only if the row still matches its
	// precondition and reports whether it did.
	Apply(ctx context.Context, tr token.Transition) (bool, error)
	Insert(ctx context.Context, tokens []token.Token) (int64, error)
	RepriceTreasury(ctx context.Context, price decimal.Decimal, now time.Time) (int64, error)
}

type ListingRepository interface {
	Create(ctx context.Context, l *listing.Listing) error
	Get(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	HasOpenForToken(ctx context.Context, tokenID uuid.UUID) (bool, error)
	// Close moves an open listing to a terminal status; false when it was not open.
	Close(ctx context.Context, id uuid.UUID, to listing.Status, now time.Time) (bool, error)
}

type TradeRepository interface {
	Create(ctx context.Context, t trade.Trade) error
}

type LedgerRepository interface {
	Append(ctx context.Context, entries ...ledger.Entry) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	SetSession(ctx context.Context, id uuid.UUID, sessionID string, now time.Time) error
	// Transition moves the payment from one status to another; false when the
	// payment was not in the from status.
	Transition(ctx context.Context, id uuid.UUID, from, to payment.Status, providerRef string, now time.Time) (bool, error)
	MarkFulfilled(ctx context.Context, id uuid.UUID, now time.Time) error
	RecordFulfillmentError(ctx context.Context, id uuid.UUID, reason string, now time.Time) error
}

type DeviceRepository interface {
	// RemoveTokenFromOthers deletes voipToken registrations owned by other users.
	RemoveTokenFromOthers(ctx context.Context, voipToken string, userID uuid.UUID) (int64, error)
	Upsert(ctx context.Context, d *device.Device) error
	TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type PurchaseItemRepository interface {
	Record(ctx context.Context, items []payment.PurchaseItem) error
}
