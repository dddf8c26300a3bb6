package money

import (
	"github.com/shopspring/decimal"

	"minute-market/internal/pkg/errs"
)

// Scale is the number of fractional digits stored for every amount.
const Scale = 2

var (
	ErrInvalidAmount  = errs.Refine(errs.ErrValidation, "amount must be a decimal number")
	ErrNonPositive    = errs.Refine(errs.ErrValidation, "amount must be positive")
	ErrTooManyDigits  = errs.Refine(errs.ErrValidation, "amount has more than two decimal places")
	ErrAmountTooLarge = errs.Refine(errs.ErrValidation, "amount exceeds the supported range")
)

// numeric(12,2)
var maxAmount = decimal.New(1, 10)

func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Mark(err, ErrInvalidAmount)
	}
	return d, nil
}

// Positive validates a price or total: strictly positive, at most two
// fractional digits and within the column range.
func Positive(d decimal.Decimal) (decimal.Decimal, error) {
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositive
	}
	if !d.Equal(d.Round(Scale)) {
		return decimal.Zero, ErrTooManyDigits
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return d.Round(Scale), nil
}

func Total(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(Scale)
}

// CheckedTotal is Total rejected when it does not fit the amount column.
func CheckedTotal(unit decimal.Decimal, quantity int) (decimal.Decimal, error) {
	total := Total(unit, quantity)
	if total.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, errs.Wrapf(ErrAmountTooLarge, "%s x %d", Format(unit), quantity)
	}
	return total, nil
}

// Cents converts an amount to the provider's minor units, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(Scale).Round(0).IntPart()
}

func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
