package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
	"minute-market/internal/usecase/queries"
)

type MarketReadStore struct {
	db db.DBTX
}

func NewMarketReadStore(db db.DBTX) *MarketReadStore {
	return &MarketReadStore{db: db}
}

var _ queries.MarketReadStore = (*MarketReadStore)(nil)

func (r *MarketReadStore) HeldTokens(ctx context.Context, userID uuid.UUID) ([]queries.TokenView, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, issued_year, remaining_minutes, status, original_price, created_at
FROM tokens
WHERE holder_id = $1 AND status IN ('active', 'listed')
ORDER BY issued_year, created_at, id`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query held tokens", err, infra.KindDBFailure)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.TokenView, error) {
		var (
			v     queries.TokenView
			price pgtype.Numeric
		)
		if err := row.Scan(&v.ID, &v.IssuedYear, &v.RemainingMinutes, &v.Status, &price, &v.CreatedAt); err != nil {
			return v, err
		}
		d, err := pgconv.DecimalFromNumeric(price)
		v.OriginalPrice = d
		return v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan held tokens", err, infra.KindDBFailure)
	}
	return out, nil
}

const openListingsSQL = `
SELECT l.id, l.token_id, l.seller_id, l.price, t.issued_year, t.remaining_minutes, l.created_at
FROM listings l
JOIN tokens t ON t.id = l.token_id
WHERE l.status = 'open'
  AND ($1::timestamptz IS NULL OR (l.created_at, l.id) < ($1, $2::uuid))
ORDER BY l.created_at DESC, l.id DESC
LIMIT $3`

func (r *MarketReadStore) OpenListings(ctx context.Context, after *queries.Keyset, limit int) ([]*queries.ListingView, error) {
	at, id := keysetArgs(after)
	rows, err := r.db.Query(ctx, openListingsSQL, at, id, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query open listings", err, infra.KindDBFailure)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ListingView, error) {
		var (
			v     queries.ListingView
			price pgtype.Numeric
		)
		if err := row.Scan(&v.ID, &v.TokenID, &v.SellerID, &price, &v.IssuedYear, &v.RemainingMinutes, &v.CreatedAt); err != nil {
			return nil, err
		}
		d, err := pgconv.DecimalFromNumeric(price)
		v.Price = d
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan open listings", err, infra.KindDBFailure)
	}
	return out, nil
}

// totalSold counts every minted token that has left the treasury.
const supplySQL = `
SELECT s.unit_price, s.version,
       count(t.id) FILTER (WHERE t.holder_id IS NULL AND t.status = 'active' AND t.remaining_minutes > 0),
       count(t.id),
       count(t.id) FILTER (WHERE t.holder_id IS NOT NULL)
FROM settings s
LEFT JOIN tokens t ON t.issued_year = $1
WHERE s.id = 1
GROUP BY s.unit_price, s.version`

func (r *MarketReadStore) Supply(ctx context.Context, year int) (*queries.SupplyView, error) {
	var (
		v     = queries.SupplyView{Year: year}
		price pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, supplySQL, year).
		Scan(&price, &v.PriceVersion, &v.TreasuryAvailable, &v.TotalMinted, &v.TotalSold)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query supply", err, infra.KindDBFailure)
	}
	d, err := pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid unit price", err, infra.KindDBFailure)
	}
	v.UnitPrice = d
	return &v, nil
}

const ledgerEntriesSQL = `
SELECT id, kind, amount, note, created_at
FROM ledger_entries
WHERE user_id = $1
  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $4`

func (r *MarketReadStore) LedgerEntries(ctx context.Context, userID uuid.UUID, after *queries.Keyset, limit int) ([]*queries.LedgerEntryView, error) {
	at, id := keysetArgs(after)
	rows, err := r.db.Query(ctx, ledgerEntriesSQL, userID, at, id, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query ledger", err, infra.KindDBFailure)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.LedgerEntryView, error) {
		var (
			v      queries.LedgerEntryView
			amount pgtype.Numeric
		)
		if err := row.Scan(&v.ID, &v.Kind, &amount, &v.Note, &v.CreatedAt); err != nil {
			return nil, err
		}
		d, err := pgconv.DecimalFromNumeric(amount)
		v.Amount = d
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan ledger", err, infra.KindDBFailure)
	}
	return out, nil
}

func (r *MarketReadStore) PaymentByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	var (
		v           queries.PaymentView
		listingID   pgtype.UUID
		amount      pgtype.Numeric
		sessionID   pgtype.Text
		fulfilledAt pgtype.Timestamptz
		fulfillErr  pgtype.Text
	)
	err := r.db.QueryRow(ctx, `
SELECT id, buyer_id, kind, status, quantity, year, listing_id, amount,
       session_id, fulfilled_at, fulfillment_error, created_at, updated_at
FROM payments WHERE id = $1`, id).Scan(
		&v.ID, &v.BuyerID, &v.Kind, &v.Status, &v.Quantity, &v.Year, &listingID, &amount,
		&sessionID, &fulfilledAt, &fulfillErr, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get payment view", err)
	}
	d, err := pgconv.DecimalFromNumeric(amount)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid payment amount", err, infra.KindDBFailure)
	}
	v.Amount = d
	v.ListingID = pgconv.UUIDPtrFromPgtype(listingID)
	v.SessionID = pgconv.StringPtrFromPgtype(sessionID)
	v.FulfilledAt = pgconv.TimePtrFromPgtype(fulfilledAt)
	v.FulfillmentError = pgconv.StringPtrFromPgtype(fulfillErr)
	return &v, nil
}

const clientsSQL = `
SELECT u.id, u.subject, u.email,
       count(t.id),
       COALESCE(SUM(t.remaining_minutes) FILTER (WHERE t.status = 'active'), 0),
       u.created_at
FROM users u
LEFT JOIN tokens t ON t.holder_id = u.id AND t.status IN ('active', 'listed')
WHERE u.role = 'client'
  AND ($1::timestamptz IS NULL OR (u.created_at, u.id) < ($1, $2::uuid))
GROUP BY u.id
ORDER BY u.created_at DESC, u.id DESC
LIMIT $3`

func (r *MarketReadStore) Clients(ctx context.Context, after *queries.Keyset, limit int) ([]*queries.ClientView, error) {
	at, id := keysetArgs(after)
	rows, err := r.db.Query(ctx, clientsSQL, at, id, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query clients", err, infra.KindDBFailure)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ClientView, error) {
		var (
			v       queries.ClientView
			email   pgtype.Text
			minutes int64
		)
		if err := row.Scan(&v.ID, &v.Subject, &email, &v.TokensHeld, &minutes, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Email = pgconv.StringPtrFromPgtype(email)
		v.ActiveMinutes = int(minutes)
		return &v, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan clients", err, infra.KindDBFailure)
	}
	return out, nil
}

func keysetArgs(after *queries.Keyset) (pgtype.Timestamptz, pgtype.UUID) {
	if after == nil {
		return pgtype.Timestamptz{}, pgtype.UUID{}
	}
	return pgtype.Timestamptz{Time: after.CreatedAt, Valid: true}, pgconv.UUIDToPgtype(after.ID)
}
