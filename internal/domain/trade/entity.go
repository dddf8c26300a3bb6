package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is the write-once record of a completed listing sale.
type Trade struct {
	ID        uuid.UUID
	ListingID uuid.UUID
	TokenID   uuid.UUID
	SellerID  uuid.UUID
	BuyerID   uuid.UUID
	Price     decimal.Decimal
	CreatedAt time.Time
}

func New(listingID, tokenID, sellerID, buyerID uuid.UUID, price decimal.Decimal, now time.Time) Trade {
	return Trade{
		ID:        uuid.New(),
		ListingID: listingID,
		TokenID:   tokenID,
		SellerID:  sellerID,
		BuyerID:   buyerID,
		Price:     price,
		CreatedAt: now,
	}
}
