package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItem is an audit row per token bought from the treasury.
type PurchaseItem struct {
	ID        uuid.UUID
	TokenID   uuid.UUID
	PaymentID *uuid.UUID
	UnitPrice decimal.Decimal
	Year      int
	CreatedAt time.Time
}

func ItemsFor(tokenIDs []uuid.UUID, paymentID *uuid.UUID, unit decimal.Decimal, year int, now time.Time) []PurchaseItem {
	out := make([]PurchaseItem, len(tokenIDs))
	for i, id := range tokenIDs {
		out[i] = PurchaseItem{ID: uuid.New(), TokenID: id, PaymentID: paymentID, UnitPrice: unit, Year: year, CreatedAt: now}
	}
	return out
}
