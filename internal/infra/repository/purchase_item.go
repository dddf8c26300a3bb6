package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"minute-market/internal/domain/payment"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

type PurchaseItemRepository struct {
	db db.DBTX
}

func NewPurchaseItemRepository(db db.DBTX) *PurchaseItemRepository {
	return &PurchaseItemRepository{db: db}
}

func (r *PurchaseItemRepository) Record(ctx context.Context, items []payment.PurchaseItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"purchase_items"},
		[]string{"id", "token_id", "payment_id", "unit_price", "year", "created_at"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			it := items[i]
			return []any{
				pgconv.UUIDToPgtype(it.ID),
				pgconv.UUIDToPgtype(it.TokenID),
				pgconv.UUIDPtrToPgtype(it.PaymentID),
				pgconv.NumericFromDecimal(it.UnitPrice),
				int32(it.Year),
				it.CreatedAt,
			}, nil
		}),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record purchase items", err)
	}
	return nil
}
