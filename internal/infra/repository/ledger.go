package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"minute-market/internal/domain/ledger"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

const insertLedgerEntrySQL = `
INSERT INTO ledger_entries (id, user_id, kind, amount, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(db db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes entries in one round trip. Rows are never updated afterwards.
func (r *LedgerRepository) Append(ctx context.Context, entries ...ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, e := range entries {
		b.Queue(insertLedgerEntrySQL, e.ID, e.UserID, string(e.Kind), pgconv.NumericFromDecimal(e.Amount), e.Note, e.CreatedAt)
	}
	if err := r.db.SendBatch(ctx, b).Close(); err != nil {
		return infra.WrapRepoErr("failed to append ledger entries", err)
	}
	return nil
}
