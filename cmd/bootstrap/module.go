package bootstrap

import (
	"go.uber.org/fx"

	"minute-market/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.InfraModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
