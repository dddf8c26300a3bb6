package queries

import (
	"context"

	"github.com/google/uuid"
)

// MarketReadStore serves the read side straight from the database,
// outside any unit of work.
type MarketReadStore interface {
	// HeldTokens returns active and listed tokens of userID, by year then age.
	HeldTokens(ctx context.Context, userID uuid.UUID) ([]TokenView, error)
	OpenListings(ctx context.Context, after *Keyset, limit int) ([]*ListingView, error)
	Supply(ctx context.Context, year int) (*SupplyView, error)
	LedgerEntries(ctx context.Context, userID uuid.UUID, after *Keyset, limit int) ([]*LedgerEntryView, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	Clients(ctx context.Context, after *Keyset, limit int) ([]*ClientView, error)
}
