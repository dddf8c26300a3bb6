package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"minute-market/internal/infra"
	"minute-market/internal/pkg/pgconv"
)

// rowScanner is implemented by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func toDecimal(n pgtype.Numeric, what string) (decimal.Decimal, error) {
	d, err := pgconv.DecimalFromNumeric(n)
	if err != nil {
		return decimal.Zero, infra.WrapRepoErr("invalid "+what, err, infra.KindDBFailure)
	}
	return d, nil
}
