package bootstrap

import (
	"go.uber.org/fx"

	"minute-market/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
