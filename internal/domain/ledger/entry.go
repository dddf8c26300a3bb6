package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/money"
	"minute-market/internal/domain/trade"
)

type Kind string

const (
	KindPurchase  Kind = "purchase"
	KindTradeBuy  Kind = "trade_buy"
	KindTradeSell Kind = "trade_sell"
)

// Entry is immutable once appended.
type Entry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      Kind
	Amount    decimal.Decimal
	Note      string
	CreatedAt time.Time
}

func Purchase(userID uuid.UUID, year, quantity int, unit decimal.Decimal, now time.Time) Entry {
	return Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      KindPurchase,
		Amount:    money.Total(unit, quantity),
		Note:      fmt.Sprintf("treasury:%d; qty:%d; unit:%s", year, quantity, money.Format(unit)),
		CreatedAt: now,
	}
}

// ForTrade returns the buyer and seller entries of a trade, in that order.
func ForTrade(t trade.Trade) [2]Entry {
	note := fmt.Sprintf("listing:%s; token:%s", t.ListingID, t.TokenID)
	return [2]Entry{
		{ID: uuid.New(), UserID: t.BuyerID, Kind: KindTradeBuy, Amount: t.Price, Note: note, CreatedAt: t.CreatedAt},
		{ID: uuid.New(), UserID: t.SellerID, Kind: KindTradeSell, Amount: t.Price, Note: note, CreatedAt: t.CreatedAt},
	}
}
