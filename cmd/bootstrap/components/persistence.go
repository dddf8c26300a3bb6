package components

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"minute-market/internal/handler/api"
	"minute-market/internal/infra/db"
	"minute-market/internal/infra/readstore"
	"minute-market/internal/infra/uow"
	"minute-market/internal/usecase/queries"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	NewPinger,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewMarketReadStore,
			fx.As(new(queries.MarketReadStore)),
		),
	),
)

// Repositories are bound per transaction inside the unit of work.
var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewPinger(pool *pgxpool.Pool) api.Pinger {
	return pool
}
