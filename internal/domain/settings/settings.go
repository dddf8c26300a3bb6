package settings

import (
	"time"

	"github.com/shopspring/decimal"

	"minute-market/internal/pkg/errs"
)

// Settings is the versioned singleton holding the treasury unit price.
type Settings struct {
	UnitPrice decimal.Decimal
	Version   int64
	UpdatedAt time.Time
}

// RequirePrice returns the unit price or ErrPriceNotSet when it is not positive.
func (s Settings) RequirePrice() (decimal.Decimal, error) {
	if !s.UnitPrice.IsPositive() {
		return decimal.Zero, errs.ErrPriceNotSet
	}
	return s.UnitPrice, nil
}
