package components

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.uber.org/fx"

	"minute-market/internal/handler/middleware"
	"minute-market/internal/infra/blob"
	"minute-market/internal/infra/cache"
	"minute-market/internal/infra/identity"
	"minute-market/internal/infra/payment/stripe"
	"minute-market/internal/infra/push/apns"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/jwt"
	"minute-market/internal/usecase"
	"minute-market/internal/usecase/commands"
)

const stripeHTTPTimeout = 30 * time.Second

var InfraModule = fx.Module("infra",
	fx.Provide(
		NewCacheClient,
		NewCacheStore,
		NewRateLimiter,
		NewEventMarker,
		NewWebhookArchive,
		NewPaymentProvider,
		NewDeviceMessenger,
		NewIdentity,
	),
)

// NewCacheClient returns nil when Redis is disabled. Consumers fall back to
// in-process implementations.
func NewCacheClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*cache.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info("Redisは無効です。インメモリ実装を使用します")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	logger.Info("Redisに接続しました", "addr", cfg.Redis.Addr)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewCacheStore(client *cache.Client) cache.Store {
	if client == nil {
		return cache.NewMemoryStore()
	}
	return cache.NewRedisStore(client)
}

// NewRateLimiter returns a nil limiter without Redis; the middleware then lets every request through.
func NewRateLimiter(client *cache.Client) middleware.Limiter {
	if client == nil {
		return nil
	}
	return cache.NewRateLimiter(client)
}

func NewEventMarker(client *cache.Client, cfg config.Config) commands.EventMarker {
	if client == nil {
		return cache.NoopEventMarker{}
	}
	return cache.NewEventMarker(client, cfg.Payment.EventMarkTTL)
}

func NewWebhookArchive(cfg config.Config, logger *slog.Logger) (commands.WebhookArchive, error) {
	if !cfg.Storage.Enabled {
		return blob.NoopArchive{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	archive, err := blob.NewS3Archive(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	logger.Info("Webhookアーカイブを有効化しました", "bucket", cfg.Storage.Bucket)
	return archive, nil
}

func NewPaymentProvider(cfg config.Config, logger *slog.Logger) commands.PaymentProvider {
	if !cfg.Payment.Enabled {
		logger.Warn("決済プロバイダーは無効です。チェックアウトは利用できません")
		return stripe.DisabledProvider{}
	}
	return stripe.NewProvider(cfg.Payment, logger, &http.Client{Timeout: stripeHTTPTimeout})
}

func NewDeviceMessenger(cfg config.Config, logger *slog.Logger) (commands.DeviceMessenger, error) {
	if !cfg.Push.Enabled {
		return apns.NewLogMessenger(logger), nil
	}
	return apns.NewClient(cfg.Push)
}

type IdentityResult struct {
	fx.Out

	Verifier  usecase.IdentityVerifier
	Directory commands.IdentityDirectory
}

func NewIdentity(lc fx.Lifecycle, cfg config.Config, store cache.Store, tokens *jwt.Service, logger *slog.Logger) (IdentityResult, error) {
	if cfg.Identity.Mode == config.IdentityModeLocal {
		logger.Warn("ローカル認証モードで起動します。本番環境では使用しないでください")
		return IdentityResult{
			Verifier:  identity.NewLocalVerifier(tokens),
			Directory: identity.LocalDirectory{},
		}, nil
	}

	// JWKS refresh runs until shutdown
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})

	httpClient := &http.Client{Timeout: cfg.Identity.HTTPTimeout}
	directory := identity.NewClerkDirectory(cfg.Identity, httpClient)
	verifier, err := identity.NewClerkVerifier(ctx, cfg.Identity, store, directory, httpClient)
	if err != nil {
		cancel()
		return IdentityResult{}, err
	}
	return IdentityResult{
		Verifier:  verifier,
		Directory: directory,
	}, nil
}
