package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"minute-market/internal/domain/device"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
)

type DeviceRepository struct {
	db db.DBTX
}

func NewDeviceRepository(db db.DBTX) *DeviceRepository {
	return &DeviceRepository{db: db}
}

func (r *DeviceRepository) RemoveTokenFromOthers(ctx context.Context, voipToken string, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM devices WHERE voip_token = $1 AND user_id <> $2`, voipToken, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to remove device token from other users", err)
	}
	return tag.RowsAffected(), nil
}

// Upsert keeps the existing row id when the token is already registered and
// copies the stored id and creation time back into d.
func (r *DeviceRepository) Upsert(ctx context.Context, d *device.Device) error {
	err := r.db.QueryRow(ctx, `
INSERT INTO devices (id, user_id, voip_token, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (voip_token) DO UPDATE
SET user_id = EXCLUDED.user_id, updated_at = EXCLUDED.updated_at
RETURNING id, created_at`,
		d.ID, d.UserID, d.VoIPToken, d.CreatedAt, d.UpdatedAt).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert device", err, infra.KindDBFailure)
	}
	return nil
}

func (r *DeviceRepository) TokensForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT voip_token FROM devices WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list device tokens", err, infra.KindDBFailure)
	}
	tokens, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan device tokens", err, infra.KindDBFailure)
	}
	return tokens, nil
}
