//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a user for subject, or returns the existing one.
func CreateTestUser(t *testing.T, db DBLike, subject, role string) uuid.UUID {
	t.Helper()

	var userID uuid.UUID
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (subject, email, role) VALUES ($1, $2, $3)
		 ON CONFLICT (subject) DO UPDATE SET role = EXCLUDED.role
		 RETURNING id`,
		subject, subject+"@example.com", role).Scan(&userID)
	require.NoError(t, err)
	return userID
}

// MintTestTokens puts n treasury tokens of year into the database, oldest first.
func MintTestTokens(t *testing.T, db DBLike, n, year int, price string) []uuid.UUID {
	t.Helper()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	ids := make([]uuid.UUID, 0, n)
	for i := range n {
		id := uuid.New()
		_, err := db.Exec(ctx,
			`INSERT INTO tokens (id, issued_year, remaining_minutes, status, original_price, created_at, updated_at)
			 VALUES ($1, $2, 60, 'active', $3, $4, $4)`,
			id, year, decimal.RequireFromString(price), base.Add(time.Duration(i)*time.Millisecond))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func SetTestUnitPrice(t *testing.T, db DBLike, price string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE settings SET unit_price = $1, version = version + 1, updated_at = now() WHERE id = 1",
		decimal.RequireFromString(price))
	require.NoError(t, err)
}

// CountTokensHeldBy counts tokens whose holder is userID, in any status.
func CountTokensHeldBy(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM tokens WHERE holder_id = $1", userID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// SeedReferenceData restores the singleton settings row.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO settings (id, unit_price, version) VALUES (1, 0, 1)
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
