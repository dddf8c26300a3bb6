//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"

	"minute-market/cmd/bootstrap"
	"minute-market/cmd/bootstrap/components"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/config"
	"minute-market/tests/common/authtest"
	"minute-market/tests/common/dbtest"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
)

// one container per test process; every suite gets its own database in it
var (
	pgOnce      sync.Once
	pgContainer *postgres.PostgresContainer
	pgErr       error
)

func sharedPostgres(t *testing.T) *postgres.PostgresContainer {
	t.Helper()
	pgOnce.Do(func() {
		pgContainer, pgErr = postgres.Run(context.Background(), "postgres:17",
			postgres.WithDatabase("postgres"),
			postgres.WithUsername(pgUser),
			postgres.WithPassword(pgPassword),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(90*time.Second),
			),
		)
	})
	require.NoError(t, pgErr, "PostgreSQLコンテナの起動に失敗")
	return pgContainer
}

// createDatabase makes a fresh database for one suite and drops it on cleanup.
func createDatabase(t *testing.T, c *postgres.PostgresContainer) config.DBConfig {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminDSN, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	admin, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "管理者接続に失敗")
	defer admin.Close()

	name := "e2e_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	// concurrent CREATE DATABASE can collide on template1
	for attempt := range 5 {
		if err = createOnce(ctx, admin, name); err == nil {
			break
		}
		slog.Warn("データベース作成を再試行します", "attempt", attempt+1, "error", err.Error())
		time.Sleep(time.Duration(attempt+1) * 300 * time.Millisecond)
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		p, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			return
		}
		defer p.Close()
		if _, err := p.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", name, "error", err.Error())
		}
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 20,
	}
}

func createOnce(ctx context.Context, admin *pgxpool.Pool, name string) error {
	_, err := admin.Exec(ctx, "CREATE DATABASE "+name)
	return err
}

// applyMigrations runs every .sql file under migrations/ in name order.
func applyMigrations(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "migrations")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err, "マイグレーションディレクトリの読み込みに失敗")

	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, f := range files {
		sql, err := os.ReadFile(filepath.Join(dir, f))
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "マイグレーションに失敗: %s", f)
	}
}

func projectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above the test directory")
		}
		dir = parent
	}
}

// startApp builds the production fx graph on the suite's pool and test config.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()
	var router *gin.Engine

	app := fx.New(
		fx.Supply(pool, cfg),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.InfraModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})
	return router
}

// SharedSuite gives each e2e suite its own database and a running app.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Auth   *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createDatabase(t, sharedPostgres(t))
	pool, closePool, err := db.Connect(dbCfg)
	require.NoError(t, err, fmt.Sprintf("データベース接続に失敗: %s", dbCfg.DBName))
	t.Cleanup(closePool)

	applyMigrations(t, pool)
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	cfg := config.NewTestConfig()
	cfg.DB = dbCfg

	s.DB = pool
	s.Config = cfg
	s.Router = startApp(t, pool, cfg)
	s.Auth = authtest.NewJWTHelper(cfg.Identity)
}

// SetupSubTest truncates every table so each s.Run starts from seed data.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
}
