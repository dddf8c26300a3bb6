package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/settings"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(db db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, error) {
	row := r.db.QueryRow(ctx, `SELECT unit_price, version, updated_at FROM settings WHERE id = 1`)
	s, err := scanSettings(row)
	if err != nil {
		return settings.Settings{}, infra.WrapRepoErr("failed to read settings", err, infra.KindDBFailure)
	}
	return s, nil
}

const setPriceSQL = `
UPDATE settings
SET unit_price = $1, version = version + 1, updated_at = $2
WHERE id = 1
RETURNING unit_price, version, updated_at`

func (r *SettingsRepository) SetPrice(ctx context.Context, price decimal.Decimal, now time.Time) (settings.Settings, error) {
	row := r.db.QueryRow(ctx, setPriceSQL, pgconv.NumericFromDecimal(price), now)
	s, err := scanSettings(row)
	if err != nil {
		return settings.Settings{}, infra.WrapRepoErr("failed to update unit price", err, infra.KindDBFailure)
	}
	return s, nil
}

func scanSettings(row rowScanner) (settings.Settings, error) {
	var (
		s     settings.Settings
		price pgtype.Numeric
	)
	if err := row.Scan(&price, &s.Version, &s.UpdatedAt); err != nil {
		return settings.Settings{}, err
	}
	d, err := toDecimal(price, "unit price")
	if err != nil {
		return settings.Settings{}, err
	}
	s.UnitPrice = d
	return s, nil
}
