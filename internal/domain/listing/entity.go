package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/money"
	"minute-market/internal/pkg/errs"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusCancelled Status = "cancelled"
	StatusSold      Status = "sold"
)

var (
	ErrNotOpen      = errs.Refine(errs.ErrInvalidState, "listing is not open")
	ErrAlreadyOpen  = errs.Refine(errs.ErrConflict, "token already has an open listing")
	ErrNotSeller    = errs.Refine(errs.ErrForbidden, "only the seller can cancel the listing")
	ErrTokenInvalid = errs.Refine(errs.ErrConflict, "token is not listable")
)

type Listing struct {
	ID        uuid.UUID
	TokenID   uuid.UUID
	SellerID  uuid.UUID
	Price     decimal.Decimal
	Status    Status
	CreatedAt time.Time
	ClosedAt  *time.Time
}

func New(tokenID, sellerID uuid.UUID, price decimal.Decimal, now time.Time) (*Listing, error) {
	p, err := money.Positive(price)
	if err != nil {
		return nil, err
	}
	return &Listing{
		ID:        uuid.New(),
		TokenID:   tokenID,
		SellerID:  sellerID,
		Price:     p,
		Status:    StatusOpen,
		CreatedAt: now,
	}, nil
}

func (l *Listing) IsOpen() bool { return l.Status == StatusOpen }

// Close moves an open listing to a terminal status.
func (l *Listing) Close(to Status, now time.Time) error {
	if !l.IsOpen() || to == StatusOpen {
		return ErrNotOpen
	}
	l.Status = to
	l.ClosedAt = &now
	return nil
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusCancelled, StatusSold:
		return Status(s), nil
	}
	return "", errs.Refine(errs.ErrValidation, "invalid listing status "+s)
}
