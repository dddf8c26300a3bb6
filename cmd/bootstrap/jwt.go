package bootstrap

import (
	"go.uber.org/fx"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/jwt"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// NewJWTService backs the local identity mode. In clerk mode the service is
// still built but never consulted.
func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.Identity.LocalSecret, cfg.Identity.LocalDuration)
}
