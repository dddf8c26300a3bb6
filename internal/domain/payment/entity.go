package payment

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/money"
	"minute-market/internal/pkg/errs"
)

type Kind string

const (
	KindTreasury Kind = "treasury"
	KindListing  Kind = "listing"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

var ErrInvalidQuantity = errs.Refine(errs.ErrValidation, "quantity must be positive")

// Payment records one checkout attempt. It is created pending before the
// provider is contacted and moves exactly once to paid or failed.
type Payment struct {
	ID               uuid.UUID
	BuyerID          uuid.UUID
	Kind             Kind
	Quantity         int
	Year             int
	ListingID        *uuid.UUID
	Amount           decimal.Decimal
	Status           Status
	SessionID        string
	ProviderRef      string
	FulfilledAt      *time.Time
	FulfillmentError *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func NewTreasury(buyerID uuid.UUID, quantity, year int, unit decimal.Decimal, now time.Time) (*Payment, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	amount, err := money.CheckedTotal(unit, quantity)
	if err != nil {
		return nil, err
	}
	return &Payment{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		Kind:      KindTreasury,
		Quantity:  quantity,
		Year:      year,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NewListing(buyerID, listingID uuid.UUID, year int, price decimal.Decimal, now time.Time) *Payment {
	return &Payment{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		Kind:      KindListing,
		Quantity:  1,
		Year:      year,
		ListingID: &listingID,
		Amount:    price,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UnitPrice is the per-token price locked at checkout time.
func (p *Payment) UnitPrice() decimal.Decimal {
	if p.Quantity <= 0 {
		return p.Amount
	}
	return p.Amount.Div(decimal.NewFromInt(int64(p.Quantity))).Round(money.Scale)
}

func (p *Payment) Metadata() map[string]string {
	m := map[string]string{
		MetaType:      string(p.Kind),
		MetaBuyerID:   p.BuyerID.String(),
		MetaPaymentID: p.ID.String(),
	}
	switch p.Kind {
	case KindTreasury:
		m[MetaQuantity] = strconv.Itoa(p.Quantity)
		m[MetaYear] = strconv.Itoa(p.Year)
	case KindListing:
		if p.ListingID != nil {
			m[MetaListingID] = p.ListingID.String()
		}
	}
	return m
}

// LineItem returns what the checkout page shows for the payment.
func (p *Payment) LineItem(currency string) LineItem {
	if p.Kind == KindListing {
		return LineItem{Name: "Token from market", Currency: currency, UnitAmount: p.Amount, Quantity: 1}
	}
	return LineItem{
		Name:       "Minute token (" + strconv.Itoa(p.Year) + ")",
		Currency:   currency,
		UnitAmount: p.UnitPrice(),
		Quantity:   p.Quantity,
	}
}

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindTreasury, KindListing:
		return Kind(s), true
	}
	return "", false
}

type LineItem struct {
	Name       string
	Currency   string
	UnitAmount decimal.Decimal
	Quantity   int
}
