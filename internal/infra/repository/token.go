package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/token"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

const tokenColumns = `id, issued_year, remaining_minutes, status, holder_id, original_price, created_at, updated_at`

type TokenRepository struct {
	db db.DBTX
}

func NewTokenRepository(db db.DBTX) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Get(ctx context.Context, id uuid.UUID) (token.Token, error) {
	return r.get(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = $1`, id)
}

func (r *TokenRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (token.Token, error) {
	return r.get(ctx, `SELECT `+tokenColumns+` FROM tokens WHERE id = $1 FOR UPDATE`, id)
}

func (r *TokenRepository) get(ctx context.Context, sql string, id uuid.UUID) (token.Token, error) {
	t, err := scanToken(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return token.Token{}, infra.WrapRepoErr("token not found", err, infra.KindNotFound)
		}
		return token.Token{}, infra.WrapRepoErr("failed to get token", err)
	}
	return t, nil
}

// Ties on created_at are broken by id so every caller sees the same order.
const findPurchasableSQL = `
SELECT ` + tokenColumns + `
FROM tokens
WHERE holder_id IS NULL AND status = 'active' AND remaining_minutes > 0 AND issued_year = $1
ORDER BY created_at, id
LIMIT $2
FOR UPDATE SKIP LOCKED`

// FindPurchasable locks up to limit treasury tokens of year, oldest first.
// Rows locked by other transactions are skipped; Apply still guards the claim.
func (r *TokenRepository) FindPurchasable(ctx context.Context, year, limit int) ([]token.Token, error) {
	rows, err := r.db.Query(ctx, findPurchasableSQL, year, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find purchasable tokens", err, infra.KindDBFailure)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (token.Token, error) {
		return scanToken(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan purchasable tokens", err, infra.KindDBFailure)
	}
	return out, nil
}

func (r *TokenRepository) CountPurchasable(ctx context.Context, year int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
SELECT count(*) FROM tokens
WHERE holder_id IS NULL AND status = 'active' AND remaining_minutes > 0 AND issued_year = $1`, year).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count purchasable tokens", err, infra.KindDBFailure)
	}
	return n, nil
}

func (r *TokenRepository) CountHeld(ctx context.Context, holder uuid.UUID, year int, statuses []token.Status) (int, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	var n int
	err := r.db.QueryRow(ctx, `
SELECT count(*) FROM tokens
WHERE holder_id = $1 AND issued_year = $2 AND status = ANY($3)`, holder, year, names).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count held tokens", err, infra.KindDBFailure)
	}
	return n, nil
}

func (r *TokenRepository) ActiveMinutes(ctx context.Context, holder uuid.UUID) (int, error) {
	var total int64
	err := r.db.QueryRow(ctx, `
SELECT COALESCE(SUM(remaining_minutes), 0) FROM tokens
WHERE holder_id = $1 AND status = 'active'`, holder).Scan(&total)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum active minutes", err, infra.KindDBFailure)
	}
	return int(total), nil
}

// The WHERE clause is the transition's precondition; a concurrent writer
// that got there first leaves zero affected rows.
const applyTransitionSQL = `
UPDATE tokens
SET holder_id = $2, status = $3, updated_at = now()
WHERE id = $1
  AND status = $4
  AND holder_id IS NOT DISTINCT FROM $5::uuid
  AND (NOT $6::boolean OR remaining_minutes > 0)`

func (r *TokenRepository) Apply(ctx context.Context, tr token.Transition) (bool, error) {
	tag, err := r.db.Exec(ctx, applyTransitionSQL,
		tr.ID,
		pgconv.UUIDPtrToPgtype(tr.ToHolder.Nullable()),
		string(tr.ToStatus),
		string(tr.FromStatus),
		pgconv.UUIDPtrToPgtype(tr.FromHolder.Nullable()),
		tr.RequireMinutes,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to apply token transition", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TokenRepository) Insert(ctx context.Context, tokens []token.Token) (int64, error) {
	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"tokens"},
		[]string{"id", "issued_year", "remaining_minutes", "status", "holder_id", "original_price", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(tokens), func(i int) ([]any, error) {
			t := tokens[i]
			return []any{
				pgconv.UUIDToPgtype(t.ID),
				int32(t.IssuedYear),
				int32(t.RemainingMinutes),
				string(t.Status),
				pgconv.UUIDPtrToPgtype(t.Holder.Nullable()),
				pgconv.NumericFromDecimal(t.OriginalPrice),
				t.CreatedAt,
				t.UpdatedAt,
			}, nil
		}),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert tokens", err)
	}
	return n, nil
}

func (r *TokenRepository) RepriceTreasury(ctx context.Context, price decimal.Decimal, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE tokens SET original_price = $1, updated_at = $2
WHERE holder_id IS NULL AND status = 'active'`, pgconv.NumericFromDecimal(price), now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reprice treasury", err)
	}
	return tag.RowsAffected(), nil
}

func scanToken(row rowScanner) (token.Token, error) {
	var (
		t      token.Token
		status string
		holder pgtype.UUID
		price  pgtype.Numeric
	)
	if err := row.Scan(&t.ID, &t.IssuedYear, &t.RemainingMinutes, &status, &holder, &price, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return token.Token{}, err
	}
	t.Status = token.Status(status)
	t.Holder = token.HolderFromNullable(pgconv.UUIDPtrFromPgtype(holder))
	d, err := toDecimal(price, "token price")
	if err != nil {
		return token.Token{}, err
	}
	t.OriginalPrice = d
	return t, nil
}
