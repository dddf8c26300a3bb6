//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"minute-market/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: errs.KindInternal},
		{name: "base kind", err: errs.ErrQuotaExceeded, want: errs.KindQuotaExceeded},
		{name: "wrapped base kind", err: errs.Wrap(errs.ErrNotFound, "load listing"), want: errs.KindNotFound},
		{name: "marked base kind", err: errs.Mark(errors.New("no rows"), errs.ErrNotFound), want: errs.KindNotFound},
		{name: "refinement", err: errs.Wrap(errs.ErrPriceNotSet, "purchase"), want: errs.KindPriceNotSet},
		{name: "marked with refinement", err: errs.Mark(errors.New("x"), errs.ErrSelfTrade), want: errs.KindSelfTrade},
		{name: "not owner", err: errs.ErrNotOwner, want: errs.KindNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errs.KindOf(tc.err))
		})
	}
}

func TestRefinementMatchesBase(t *testing.T) {
	err := errs.Wrap(errs.ErrPriceNotSet, "checkout")
	assert.True(t, errs.Is(err, errs.ErrPriceNotSet))
	assert.True(t, errs.Is(err, errs.ErrConfiguration))

	other := errs.Mark(errors.New("missing key"), errs.ErrConfiguration)
	assert.False(t, errs.Is(other, errs.ErrPriceNotSet))

	marked := errs.Mark(errors.New("seller buys"), errs.ErrSelfTrade)
	assert.True(t, errs.Is(marked, errs.ErrValidation))
}

func TestIsBusinessRule(t *testing.T) {
	assert.True(t, errs.IsBusinessRule(errs.ErrInsufficientSupply))
	assert.True(t, errs.IsBusinessRule(errs.Wrap(errs.ErrInconsistentState, "buy")))
	assert.False(t, errs.IsBusinessRule(errors.New("connection reset")))
	assert.False(t, errs.IsBusinessRule(errs.ErrPriceNotSet))
	assert.False(t, errs.IsBusinessRule(errs.Wrap(errs.ErrPriceNotSet, "fulfill treasury")))
	assert.False(t, errs.IsBusinessRule(errs.Mark(errors.New("session expired"), errs.ErrUpstream)))
	assert.True(t, errs.IsBusinessRule(errs.ErrSelfTrade))
	assert.False(t, errs.IsBusinessRule(nil))
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "cannot buy own listing", errs.PublicMessage(errs.Wrap(errs.ErrSelfTrade, "buy listing")))
	assert.Equal(t, "load: boom", errs.PublicMessage(errs.Wrap(errors.New("boom"), "load")))
}
