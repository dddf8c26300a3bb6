package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Market    MarketConfig
	Identity  IdentityConfig
	Payment   PaymentConfig
	Push      PushConfig
	Redis     RedisConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port   string `envconfig:"PORT" required:"true"`
	AppURL string `envconfig:"APP_URL" default:"http://localhost:3000"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone      string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	AutoMigrate   bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"DB_MIGRATIONS_DIR" default:"migrations"`
	AtlasBin      string `envconfig:"ATLAS_BIN" default:"atlas"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Clerk-Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type MarketConfig struct {
	MaxTokensPerYear int `envconfig:"MARKET_MAX_TOKENS_PER_YEAR" default:"20"`
	MintMinutes      int `envconfig:"MARKET_MINT_MINUTES" default:"60"`
	// bounded re-selection when a concurrent purchase wins a claimed token
	ClaimRounds int `envconfig:"MARKET_CLAIM_ROUNDS" default:"5"`
}

const (
	IdentityModeClerk = "clerk"
	IdentityModeLocal = "local"
)

type IdentityConfig struct {
	Mode        string        `envconfig:"IDENTITY_MODE" default:"local"`
	Issuer      string        `envconfig:"CLERK_ISSUER"`
	SecretKey   string        `envconfig:"CLERK_SECRET_KEY"`
	APIURL      string        `envconfig:"CLERK_API_URL" default:"https://api.clerk.com"`
	JWKSTTL     time.Duration `envconfig:"CLERK_JWKS_TTL" default:"1h"`
	RoleTTL     time.Duration `envconfig:"CLERK_ROLE_TTL" default:"5m"`
	HTTPTimeout time.Duration `envconfig:"CLERK_HTTP_TIMEOUT" default:"10s"`

	LocalSecret   string        `envconfig:"LOCAL_JWT_SECRET"`
	LocalDuration time.Duration `envconfig:"LOCAL_JWT_DURATION" default:"24h"`
}

type PaymentConfig struct {
	Enabled       bool          `envconfig:"STRIPE_ENABLED" default:"false"`
	SecretKey     string        `envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret string        `envconfig:"STRIPE_WEBHOOK_SECRET"`
	APIURL        string        `envconfig:"STRIPE_API_URL"`
	Currency      string        `envconfig:"PAYMENT_CURRENCY" default:"eur"`
	Tolerance     time.Duration `envconfig:"STRIPE_WEBHOOK_TOLERANCE" default:"5m"`
	EventMarkTTL  time.Duration `envconfig:"PAYMENT_EVENT_MARK_TTL" default:"72h"`
}

type PushConfig struct {
	Enabled    bool   `envconfig:"APNS_ENABLED" default:"false"`
	TeamID     string `envconfig:"APNS_TEAM_ID"`
	KeyID      string `envconfig:"APNS_KEY_ID"`
	BundleID   string `envconfig:"APNS_BUNDLE_ID"`
	PrivateKey string `envconfig:"APNS_PRIVATE_KEY"`
	// path alternative to APNS_PRIVATE_KEY
	PrivateKeyFile string        `envconfig:"APNS_PRIVATE_KEY_FILE"`
	Sandbox        bool          `envconfig:"APNS_SANDBOX" default:"true"`
	Host           string        `envconfig:"APNS_HOST"`
	Timeout        time.Duration `envconfig:"APNS_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	PoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"10"`
	Prefix   string `envconfig:"REDIS_KEY_PREFIX" default:"mm:"`
}

type StorageConfig struct {
	Enabled   bool   `envconfig:"S3_ENABLED" default:"false"`
	Endpoint  string `envconfig:"S3_ENDPOINT"`
	Region    string `envconfig:"S3_REGION" default:"eu-central-1"`
	Bucket    string `envconfig:"S3_BUCKET" default:"minute-market-webhooks"`
	AccessKey string `envconfig:"S3_ACCESS_KEY"`
	SecretKey string `envconfig:"S3_SECRET_KEY"`
	Prefix    string `envconfig:"S3_PREFIX" default:"webhooks/"`
}

type RateLimitConfig struct {
	Enabled bool          `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	Limit   int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	Window  time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c *IdentityConfig) Validate() error {
	switch c.Mode {
	case IdentityModeClerk:
		if c.Issuer == "" {
			return fmt.Errorf("CLERK_ISSUER is required in clerk mode")
		}
	case IdentityModeLocal:
		if c.LocalSecret == "" {
			return fmt.Errorf("LOCAL_JWT_SECRET is required in local mode")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_MODE %q", c.Mode)
	}
	return nil
}

func (c *PaymentConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.SecretKey == "" || c.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET are required when STRIPE_ENABLED")
	}
	return nil
}

// LoadConfig reads .env (when present) and then the process environment.
// Variables already set in the environment win over .env values.
func LoadConfig() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Identity.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Payment.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:   "8889", // Test port
			AppURL: "http://localhost:3000",
		},
		DB: DBConfig{
			Host:          "localhost",
			Port:          "15433", // Test DB port
			User:          "test",
			Password:      "test",
			DBName:        "test_db",
			SSLMode:       "disable",
			TimeZone:      "UTC",
			MaxConns:      20,
			MigrationsDir: "migrations",
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Market: MarketConfig{
			MaxTokensPerYear: 20,
			MintMinutes:      60,
			ClaimRounds:      5,
		},
		Identity: IdentityConfig{
			Mode:          IdentityModeLocal,
			LocalSecret:   "test-secret-key-for-local-identity",
			LocalDuration: time.Hour,
		},
		Payment: PaymentConfig{
			Currency:     "eur",
			Tolerance:    5 * time.Minute,
			EventMarkTTL: time.Hour,
		},
		RateLimit: RateLimitConfig{
			Limit:  60,
			Window: time.Minute,
		},
	}
}
