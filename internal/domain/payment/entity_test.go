//go:build unit

package payment_test

import (
	"testing"
	"time"

	"minute-market/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTreasury(t *testing.T) {
	buyer := uuid.New()
	p, err := payment.NewTreasury(buyer, 3, 2025, decimal.RequireFromString("4.99"), time.Now())
	require.NoError(t, err)

	assert.Equal(t, payment.StatusPending, p.Status)
	assert.Equal(t, "14.97", p.Amount.StringFixed(2))
	assert.Equal(t, "4.99", p.UnitPrice().StringFixed(2))

	meta := p.Metadata()
	assert.Equal(t, map[string]string{
		"type":      "treasury",
		"buyerId":   buyer.String(),
		"quantity":  "3",
		"year":      "2025",
		"paymentId": p.ID.String(),
	}, meta)

	item := p.LineItem("eur")
	assert.Equal(t, "Minute token (2025)", item.Name)
	assert.Equal(t, 3, item.Quantity)

	_, err = payment.NewTreasury(buyer, 0, 2025, decimal.NewFromInt(1), time.Now())
	assert.ErrorIs(t, err, payment.ErrInvalidQuantity)
}

func TestNewListing(t *testing.T) {
	buyer, listingID := uuid.New(), uuid.New()
	p := payment.NewListing(buyer, listingID, 2025, decimal.NewFromInt(9), time.Now())

	meta := p.Metadata()
	assert.Equal(t, "listing", meta["type"])
	assert.Equal(t, listingID.String(), meta["listingId"])
	assert.NotContains(t, meta, "quantity")

	item := p.LineItem("eur")
	assert.Equal(t, "Token from market", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, item.UnitAmount.Equal(decimal.NewFromInt(9)))
}

func TestEventPaymentID(t *testing.T) {
	id := uuid.New()
	ev := payment.Event{Metadata: map[string]string{"paymentId": id.String()}}
	got, ok := ev.PaymentID()
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = payment.Event{Metadata: map[string]string{"paymentId": "nope"}}.PaymentID()
	assert.False(t, ok)
	_, ok = payment.Event{}.PaymentID()
	assert.False(t, ok)

	assert.True(t, payment.EventCheckoutExpired.Terminal())
	assert.False(t, payment.EventCheckoutCompleted.Terminal())
}
