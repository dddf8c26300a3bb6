package components

import (
	"go.uber.org/fx"

	"minute-market/internal/handler"
	"minute-market/internal/handler/api"
	"minute-market/internal/handler/middleware"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHealthHandler,
		api.NewMarketHandler,
		api.NewAccountHandler,
		api.NewCheckoutHandler,
		api.NewAdminHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Health   *api.HealthHandler
	Market   *api.MarketHandler
	Account  *api.AccountHandler
	Checkout *api.CheckoutHandler
	Admin    *api.AdminHandler
	Webhook  *api.WebhookHandler
}

func NewHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Health:   p.Health,
		Market:   p.Market,
		Account:  p.Account,
		Checkout: p.Checkout,
		Admin:    p.Admin,
		Webhook:  p.Webhook,
	}
}
