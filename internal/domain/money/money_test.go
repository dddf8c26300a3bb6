//go:build unit

package money_test

import (
	"testing"

	"minute-market/internal/domain/money"
	"minute-market/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositive(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		errIs error
	}{
		{name: "whole number", in: "5", want: "5.00"},
		{name: "two decimals", in: "4.99", want: "4.99"},
		{name: "trailing zeros", in: "1.500", want: "1.50"},
		{name: "zero", in: "0", errIs: money.ErrNonPositive},
		{name: "negative", in: "-1", errIs: money.ErrNonPositive},
		{name: "three decimals", in: "1.005", errIs: money.ErrTooManyDigits},
		{name: "too large", in: "10000000000", errIs: money.ErrAmountTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := money.Positive(decimal.RequireFromString(tc.in))
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.errIs))
				assert.True(t, errs.Is(err, errs.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, money.Format(got))
		})
	}
}

func TestCentsAndTotal(t *testing.T) {
	assert.Equal(t, int64(499), money.Cents(decimal.RequireFromString("4.99")))
	assert.Equal(t, int64(1000), money.Cents(decimal.RequireFromString("10")))
	assert.Equal(t, "14.97", money.Format(money.Total(decimal.RequireFromString("4.99"), 3)))
}

func TestCheckedTotal(t *testing.T) {
	got, err := money.CheckedTotal(decimal.RequireFromString("4.99"), 20)
	require.NoError(t, err)
	assert.Equal(t, "99.80", money.Format(got))

	// a price just under the column limit overflows once multiplied
	_, err = money.CheckedTotal(decimal.RequireFromString("9999999999.99"), 20)
	assert.True(t, errs.Is(err, money.ErrAmountTooLarge))
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	_, err = money.CheckedTotal(decimal.RequireFromString("500000000"), 20)
	assert.True(t, errs.Is(err, money.ErrAmountTooLarge), "total equal to the limit")
}

func TestParse(t *testing.T) {
	_, err := money.Parse("abc")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}
