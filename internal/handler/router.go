package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"minute-market/internal/domain/user"
	"minute-market/internal/handler/api"
	"minute-market/internal/handler/middleware"
	"minute-market/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health   *api.HealthHandler
	Market   *api.MarketHandler
	Account  *api.AccountHandler
	Checkout *api.CheckoutHandler
	Admin    *api.AdminHandler
	Webhook  *api.WebhookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, auth *middleware.AuthMiddleware, limiter middleware.Limiter) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, auth, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, auth *middleware.AuthMiddleware, limiter middleware.Limiter) {
	engine.GET("/health", h.Health.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// money-moving routes share one rate limit per user
	spend := middleware.RateLimit(limiter, cfg.RateLimit, "spend")

	apiGroup := engine.Group("/api")
	{
		public := apiGroup.Group("")
		public.Use(middleware.RateLimit(limiter, cfg.RateLimit, "public"))
		addRoutes(public, []route{
			{Method: http.MethodGet, Path: "/public/supply", Handler: h.Market.Supply},
			{Method: http.MethodGet, Path: "/market/listings", Handler: h.Market.ListListings},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/webhooks/payments", Handler: h.Webhook.Payments},
		})

		authed := apiGroup.Group("")
		authed.Use(auth.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "/account/sync", Handler: h.Account.Sync},
			{Method: http.MethodPost, Path: "/account/devices", Handler: h.Account.RegisterDevice},
			{Method: http.MethodGet, Path: "/account/balance", Handler: h.Account.Balance},
			{Method: http.MethodGet, Path: "/account/ledger", Handler: h.Account.Ledger},

			{Method: http.MethodPost, Path: "/market/purchase", Handler: h.Market.Purchase, Mw: []gin.HandlerFunc{spend}},
			{Method: http.MethodPost, Path: "/market/listings", Handler: h.Market.ListToken},
			{Method: http.MethodPost, Path: "/market/listings/:id/cancel", Handler: h.Market.CancelListing},
			{Method: http.MethodPost, Path: "/market/listings/:id/buy", Handler: h.Market.BuyListing, Mw: []gin.HandlerFunc{spend}},

			{Method: http.MethodPost, Path: "/checkout/treasury", Handler: h.Checkout.Treasury, Mw: []gin.HandlerFunc{spend}},
			{Method: http.MethodPost, Path: "/checkout/listing", Handler: h.Checkout.Listing, Mw: []gin.HandlerFunc{spend}},
			{Method: http.MethodGet, Path: "/checkout/payments/:id", Handler: h.Checkout.GetPayment},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/mint", Handler: h.Admin.Mint},
			{Method: http.MethodPost, Path: "/price", Handler: h.Admin.SetPrice},
			{Method: http.MethodPost, Path: "/clients", Handler: h.Admin.CreateClient},
			{Method: http.MethodGet, Path: "/clients", Handler: h.Admin.ListClients},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
