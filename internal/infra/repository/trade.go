package repository

import (
	"context"

	"minute-market/internal/domain/trade"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

type TradeRepository struct {
	db db.DBTX
}

func NewTradeRepository(db db.DBTX) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) Create(ctx context.Context, t trade.Trade) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO trades (id, listing_id, token_id, seller_id, buyer_id, price, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.ListingID, t.TokenID, t.SellerID, t.BuyerID, pgconv.NumericFromDecimal(t.Price), t.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create trade", err)
	}
	return nil
}
