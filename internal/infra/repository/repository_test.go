//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/token"
	"minute-market/internal/infra"
	"minute-market/internal/pkg/errs"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	a := m.Called(ctx, sql, args)
	return a.Get(0).(pgconn.CommandTag), a.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	a := m.Called(ctx, sql, args)
	rows, _ := a.Get(0).(pgx.Rows)
	return rows, a.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

func (m *MockDBTX) CopyFrom(ctx context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	a := m.Called(ctx, table, cols, src)
	return a.Get(0).(int64), a.Error(1)
}

func (m *MockDBTX) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return m.Called(ctx, b).Get(0).(pgx.BatchResults)
}

func (m *MockDBTX) Begin(ctx context.Context) (pgx.Tx, error) {
	a := m.Called(ctx)
	tx, _ := a.Get(0).(pgx.Tx)
	return tx, a.Error(1)
}

// errRow is a pgx.Row whose Scan fails with err.
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func TestTokenApply(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		err     error
		want    bool
		wantErr bool
	}{
		{name: "row matched the precondition", tag: "UPDATE 1", want: true},
		{name: "row changed underneath", tag: "UPDATE 0", want: false},
		{name: "database failure", tag: "", err: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, applyTransitionSQL, mock.Anything).
				Return(pgconn.NewCommandTag(tt.tag), tt.err)
			repo := NewTokenRepository(db)

			got, err := repo.Apply(context.Background(), token.Claim(uuid.New(), uuid.New()))

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			db.AssertExpectations(t)
		})
	}
}

func TestListingCreateConflict(t *testing.T) {
	db := new(MockDBTX)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.CommandTag{}, uniqueViolation("listings_one_open_per_token"))
	repo := NewListingRepository(db)
	l, err := listing.New(uuid.New(), uuid.New(), decimal.RequireFromString("5.00"), time.Now())
	require.NoError(t, err)

	err = repo.Create(context.Background(), l)

	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	assert.Equal(t, "listings_one_open_per_token", infra.ConstraintName(err))
}

func TestListingClose(t *testing.T) {
	db := new(MockDBTX)
	id := uuid.New()
	db.On("Exec", mock.Anything, mock.Anything, mock.MatchedBy(func(args []any) bool {
		return len(args) == 3 && args[0] == id && args[1] == string(listing.StatusSold)
	})).Return(pgconn.NewCommandTag("UPDATE 0"), nil)
	repo := NewListingRepository(db)

	closed, err := repo.Close(context.Background(), id, listing.StatusSold, time.Now())

	require.NoError(t, err)
	assert.False(t, closed)
	db.AssertExpectations(t)
}

func TestUserLookups(t *testing.T) {
	t.Run("missing rows are NotFound", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow{err: pgx.ErrNoRows})
		repo := NewUserRepository(db)

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.True(t, errs.Is(err, errs.ErrNotFound))

		_, err = repo.FindBySubject(context.Background(), "user_x")
		assert.True(t, errs.Is(err, errs.ErrNotFound))

		err = repo.Lock(context.Background(), uuid.New())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("other failures stay internal", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(errRow{err: assert.AnError})
		repo := NewUserRepository(db)

		_, err := repo.FindByID(context.Background(), uuid.New())

		require.Error(t, err)
		assert.False(t, errs.Is(err, errs.ErrNotFound))
		assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	})
}

func TestDeviceRemoveTokenFromOthers(t *testing.T) {
	db := new(MockDBTX)
	owner := uuid.New()
	db.On("Exec", mock.Anything, mock.Anything, []any{"voip-1", owner}).
		Return(pgconn.NewCommandTag("DELETE 2"), nil)
	repo := NewDeviceRepository(db)

	n, err := repo.RemoveTokenFromOthers(context.Background(), "voip-1", owner)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
