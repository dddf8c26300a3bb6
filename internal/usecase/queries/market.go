package queries

import (
	"context"

	"minute-market/internal/domain/token"
	"minute-market/internal/pkg/clock"
)

type MarketQueries interface {
	GetSupply(ctx context.Context, year int) (*SupplyView, error)
	ListOpenListings(ctx context.Context, cursor *Cursor, limit int) ([]*ListingView, *Cursor, error)
}

type marketQueriesImpl struct {
	store MarketReadStore
	clock clock.Clock
}

func NewMarketQueries(store MarketReadStore, clk clock.Clock) MarketQueries {
	return &marketQueriesImpl{store: store, clock: clk}
}

// GetSupply defaults to the current year.
func (q *marketQueriesImpl) GetSupply(ctx context.Context, year int) (*SupplyView, error) {
	if year == 0 {
		year = clock.Year(q.clock)
	}
	if err := token.ValidateYear(year); err != nil {
		return nil, err
	}
	return q.store.Supply(ctx, year)
}

// ListOpenListings returns open listings newest first.
func (q *marketQueriesImpl) ListOpenListings(ctx context.Context, cursor *Cursor, limit int) ([]*ListingView, *Cursor, error) {
	limit = ValidateLimit(limit)
	after, err := position(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.OpenListings(ctx, after, limit+1)
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit, func(l *ListingView) Keyset { return Keyset{CreatedAt: l.CreatedAt, ID: l.ID} })
	return rows, next, nil
}
