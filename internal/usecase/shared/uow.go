package shared

import (
	"context"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the repositories bound to one database transaction.
type Tx interface {
	Users() UserRepository
	Settings() SettingsRepository
	Tokens() TokenRepository
	Listings() ListingRepository
	Trades() TradeRepository
	Ledger() LedgerRepository
	Payments() PaymentRepository
	Devices() DeviceRepository
	PurchaseItems() PurchaseItemRepository
	// Savepoint runs fn in a nested transaction. When fn fails only its own
	// writes are rolled back and the outer transaction stays usable.
	Savepoint(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
