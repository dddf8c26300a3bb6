package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/token"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/shared"
)

// ListingEngine opens and closes listings inside a caller's transaction.
type ListingEngine struct {
	clock clock.Clock
}

func NewListingEngine(clk clock.Clock) *ListingEngine {
	return &ListingEngine{clock: clk}
}

// Open locks the token and lists it for sale. Checks run in the order
// conflict, ownership, token state.
func (e *ListingEngine) Open(ctx context.Context, tx shared.Tx, tokenID, sellerID uuid.UUID, price decimal.Decimal) (*listing.Listing, error) {
	l, err := listing.New(tokenID, sellerID, price, e.clock.Now())
	if err != nil {
		return nil, err
	}

	tok, err := tx.Tokens().GetForUpdate(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	open, err := tx.Listings().HasOpenForToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, listing.ErrAlreadyOpen
	}
	if !tok.Holder.Is(sellerID) {
		return nil, errs.ErrNotOwner
	}
	if !tok.Listable(sellerID) {
		return nil, listing.ErrTokenInvalid
	}

	applied, err := tx.Tokens().Apply(ctx, token.List(tokenID, sellerID))
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, listing.ErrTokenInvalid
	}
	if err := tx.Listings().Create(ctx, l); err != nil {
		if errs.Is(err, errs.ErrConflict) {
			return nil, listing.ErrAlreadyOpen
		}
		return nil, err
	}
	return l, nil
}

// Cancel closes an open listing of sellerID and returns its token to active.
func (e *ListingEngine) Cancel(ctx context.Context, tx shared.Tx, listingID, sellerID uuid.UUID) (*listing.Listing, error) {
	l, err := tx.Listings().GetForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, listing.ErrNotSeller
	}
	if err := e.close(ctx, tx, l, listing.StatusCancelled); err != nil {
		return nil, err
	}

	applied, err := tx.Tokens().Apply(ctx, token.Unlist(l.TokenID, sellerID))
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errs.Mark(errs.Newf("token %s of listing %s is not listed by its seller", l.TokenID, l.ID), errs.ErrInconsistentState)
	}
	return l, nil
}

// RequireOpen locks the listing and fails unless it is open.
func (e *ListingEngine) RequireOpen(ctx context.Context, tx shared.Tx, listingID uuid.UUID) (*listing.Listing, error) {
	l, err := tx.Listings().GetForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !l.IsOpen() {
		return nil, listing.ErrNotOpen
	}
	return l, nil
}

// MarkSold closes a locked open listing as sold.
func (e *ListingEngine) MarkSold(ctx context.Context, tx shared.Tx, l *listing.Listing) error {
	return e.close(ctx, tx, l, listing.StatusSold)
}

func (e *ListingEngine) close(ctx context.Context, tx shared.Tx, l *listing.Listing, to listing.Status) error {
	now := e.clock.Now()
	if err := l.Close(to, now); err != nil {
		return err
	}
	closed, err := tx.Listings().Close(ctx, l.ID, to, now)
	if err != nil {
		return err
	}
	if !closed {
		return listing.ErrNotOpen
	}
	return nil
}
