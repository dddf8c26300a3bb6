package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"minute-market/internal/domain/listing"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

const listingColumns = `id, token_id, seller_id, price, status, created_at, closed_at`

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(db db.DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create fails with a DUPLICATE_KEY error when the token already has an
// open listing (listings_one_open_per_token).
func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO listings (id, token_id, seller_id, price, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.TokenID, l.SellerID, pgconv.NumericFromDecimal(l.Price), string(l.Status), l.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create listing", err)
	}
	return nil
}

func (r *ListingRepository) Get(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.get(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
}

func (r *ListingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.get(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1 FOR UPDATE`, id)
}

func (r *ListingRepository) get(ctx context.Context, sql string, id uuid.UUID) (*listing.Listing, error) {
	l, err := scanListing(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get listing", err)
	}
	return l, nil
}

func (r *ListingRepository) HasOpenForToken(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	var open bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM listings WHERE token_id = $1 AND status = 'open')`, tokenID).Scan(&open)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check open listing", err, infra.KindDBFailure)
	}
	return open, nil
}

func (r *ListingRepository) Close(ctx context.Context, id uuid.UUID, to listing.Status, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE listings SET status = $2, closed_at = $3
WHERE id = $1 AND status = 'open'`, id, string(to), now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to close listing", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanListing(row rowScanner) (*listing.Listing, error) {
	var (
		l        listing.Listing
		price    pgtype.Numeric
		status   string
		closedAt pgtype.Timestamptz
	)
	if err := row.Scan(&l.ID, &l.TokenID, &l.SellerID, &price, &status, &l.CreatedAt, &closedAt); err != nil {
		return nil, err
	}
	d, err := toDecimal(price, "listing price")
	if err != nil {
		return nil, err
	}
	l.Price = d
	l.Status = listing.Status(status)
	l.ClosedAt = pgconv.TimePtrFromPgtype(closedAt)
	return &l, nil
}
