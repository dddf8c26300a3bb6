package token

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/pkg/errs"
)

const DefaultMinutes = 60

var (
	ErrInvalidYear     = errs.Refine(errs.ErrValidation, "invalid issue year")
	ErrInvalidMinutes  = errs.Refine(errs.ErrValidation, "remaining minutes must not be negative")
	ErrInvalidQuantity = errs.Refine(errs.ErrValidation, "quantity must be positive")
)

type Token struct {
	ID               uuid.UUID
	IssuedYear       int
	RemainingMinutes int
	Status           Status
	Holder           Holder
	OriginalPrice    decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Mint builds quantity fresh treasury tokens. createdAt is spread by a
// microsecond per token so oldest-first ordering matches mint order.
func Mint(quantity, year, minutes int, price decimal.Decimal, now time.Time) ([]Token, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	if minutes <= 0 {
		return nil, ErrInvalidMinutes
	}
	out := make([]Token, quantity)
	for i := range out {
		ts := now.Add(time.Duration(i) * time.Microsecond)
		out[i] = Token{
			ID:               uuid.New(),
			IssuedYear:       year,
			RemainingMinutes: minutes,
			Status:           StatusActive,
			Holder:           Treasury(),
			OriginalPrice:    price,
			CreatedAt:        ts,
			UpdatedAt:        ts,
		}
	}
	return out, nil
}

func ValidateYear(year int) error {
	if year < 2000 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

// Purchasable reports whether the token can be claimed from the treasury.
func (t Token) Purchasable() bool {
	return t.Holder.IsTreasury() && t.Status == StatusActive && t.RemainingMinutes > 0
}

// Listable reports whether seller may open a listing for the token.
func (t Token) Listable(seller uuid.UUID) bool {
	return t.Holder.Is(seller) && t.Status == StatusActive && t.RemainingMinutes > 0
}

// Transferable reports whether a listed token still matches what the seller offered.
func (t Token) Transferable(seller uuid.UUID) bool {
	return t.Holder.Is(seller) && t.Status == StatusListed && t.RemainingMinutes > 0
}
