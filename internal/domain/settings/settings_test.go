//go:build unit

package settings_test

import (
	"testing"

	"minute-market/internal/domain/settings"
	"minute-market/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirePrice(t *testing.T) {
	_, err := settings.Settings{}.RequirePrice()
	assert.True(t, errs.Is(err, errs.ErrPriceNotSet))
	assert.Equal(t, errs.KindPriceNotSet, errs.KindOf(err))

	p, err := settings.Settings{UnitPrice: decimal.RequireFromString("2.50"), Version: 3}.RequirePrice()
	require.NoError(t, err)
	assert.Equal(t, "2.50", p.StringFixed(2))
}
