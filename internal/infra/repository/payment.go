package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"minute-market/internal/domain/payment"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

const paymentColumns = `id, buyer_id, kind, quantity, year, listing_id, amount, status,
session_id, provider_ref, fulfilled_at, fulfillment_error, created_at, updated_at`

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(db db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO payments (id, buyer_id, kind, quantity, year, listing_id, amount, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.BuyerID, string(p.Kind), p.Quantity, p.Year, pgconv.UUIDPtrToPgtype(p.ListingID),
		pgconv.NumericFromDecimal(p.Amount), string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get payment", err)
	}
	return p, nil
}

func (r *PaymentRepository) SetSession(ctx context.Context, id uuid.UUID, sessionID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE payments SET session_id = $2, updated_at = $3 WHERE id = $1`, id, sessionID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to store checkout session", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

// Transition is the idempotency guard for provider events: only the first
// delivery finds the payment in the from status.
func (r *PaymentRepository) Transition(ctx context.Context, id uuid.UUID, from, to payment.Status, providerRef string, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE payments
SET status = $3, provider_ref = COALESCE($4, provider_ref), updated_at = $5
WHERE id = $1 AND status = $2`,
		id, string(from), string(to), pgconv.TextOrNull(providerRef), now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition payment", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PaymentRepository) MarkFulfilled(ctx context.Context, id uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, `
UPDATE payments SET fulfilled_at = $2, fulfillment_error = NULL, updated_at = $2
WHERE id = $1`, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to mark payment fulfilled", err)
	}
	return nil
}

func (r *PaymentRepository) RecordFulfillmentError(ctx context.Context, id uuid.UUID, reason string, now time.Time) error {
	_, err := r.db.Exec(ctx, `
UPDATE payments SET fulfillment_error = $2, updated_at = $3
WHERE id = $1`, id, reason, now)
	if err != nil {
		return infra.WrapRepoErr("failed to record fulfillment error", err)
	}
	return nil
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var (
		p           payment.Payment
		kind        string
		status      string
		listingID   pgtype.UUID
		amount      pgtype.Numeric
		sessionID   pgtype.Text
		providerRef pgtype.Text
		fulfilledAt pgtype.Timestamptz
		fulfillErr  pgtype.Text
	)
	err := row.Scan(&p.ID, &p.BuyerID, &kind, &p.Quantity, &p.Year, &listingID, &amount, &status,
		&sessionID, &providerRef, &fulfilledAt, &fulfillErr, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d, err := toDecimal(amount, "payment amount")
	if err != nil {
		return nil, err
	}
	p.Kind = payment.Kind(kind)
	p.Status = payment.Status(status)
	p.ListingID = pgconv.UUIDPtrFromPgtype(listingID)
	p.Amount = d
	p.SessionID = sessionID.String
	p.ProviderRef = providerRef.String
	p.FulfilledAt = pgconv.TimePtrFromPgtype(fulfilledAt)
	p.FulfillmentError = pgconv.StringPtrFromPgtype(fulfillErr)
	return &p, nil
}
