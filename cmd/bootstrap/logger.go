package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"minute-market/internal/handler/middleware"
	"minute-market/internal/pkg/config"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		middleware.NewLogger,
		NewSlogLogger,
		func(cfg config.Config) config.LogConfig { return cfg.Log },
	),
)

func NewSlogLogger(logger *middleware.Logger) *slog.Logger {
	return logger.GetSlogLogger()
}
