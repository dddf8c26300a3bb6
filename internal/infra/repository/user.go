package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"minute-market/internal/domain/user"
	"minute-market/internal/infra"
	"minute-market/internal/infra/db"
	"minute-market/internal/pkg/pgconv"
)

const userColumns = `id, subject, email, role, created_at`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const ensureUserSQL = `
INSERT INTO users (id, subject, email, role, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (subject) DO UPDATE
SET email = COALESCE(EXCLUDED.email, users.email),
    role = EXCLUDED.role
RETURNING ` + userColumns

func (r *UserRepository) Ensure(ctx context.Context, u *user.User) (*user.User, error) {
	row := r.db.QueryRow(ctx, ensureUserSQL,
		u.ID(), u.Subject(), pgconv.StringPtrToPgtype(u.EmailString()), string(u.Role()), u.CreatedAt())
	out, err := scanUser(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to ensure user", err, infra.KindDBFailure)
	}
	return out, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) FindBySubject(ctx context.Context, subject string) (*user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE subject = $1`, subject)
	u, err := scanUser(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by subject", err)
	}
	return u, nil
}

func (r *UserRepository) Lock(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock user", err)
	}
	return nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		id        uuid.UUID
		subject   string
		email     pgtype.Text
		role      string
		createdAt time.Time
	)
	if err := row.Scan(&id, &subject, &email, &role, &createdAt); err != nil {
		return nil, err
	}

	var e *user.Email
	if email.Valid {
		if parsed, err := user.NewEmail(email.String); err == nil {
			e = &parsed
		}
	}
	return user.Restore(id, subject, e, user.Role(role), createdAt), nil
}
