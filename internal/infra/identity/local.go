package identity

import (
	"context"

	"github.com/google/uuid"

	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/pkg/jwt"
	"minute-market/internal/usecase"
	"minute-market/internal/usecase/commands"
)

// LocalVerifier accepts HS256 tokens issued by jwt.Service.
type LocalVerifier struct {
	tokens *jwt.Service
}

func NewLocalVerifier(tokens *jwt.Service) *LocalVerifier {
	return &LocalVerifier{tokens: tokens}
}

func (v *LocalVerifier) Verify(_ context.Context, bearer string) (usecase.Identity, error) {
	raw := BearerToken(bearer)
	if raw == "" {
		return usecase.Identity{}, ErrMissingToken
	}
	claims, err := v.tokens.ValidateToken(raw)
	if err != nil {
		return usecase.Identity{}, err
	}
	id := usecase.Identity{Subject: claims.Subject, Email: claims.Email, Role: user.RoleClient}
	if r, err := user.NewRole(claims.Role); err == nil {
		id.Role = r
	}
	return id, nil
}

// LocalDirectory stands in for the identity provider in local mode: users
// exist as soon as a token names them.
type LocalDirectory struct{}

func (LocalDirectory) EnsureClientRole(context.Context, string) error { return nil }

func (LocalDirectory) CreateUser(_ context.Context, params commands.DirectoryUserParams) (*commands.DirectoryUser, error) {
	if params.Email == "" {
		return nil, errs.Mark(errs.New("email is required"), errs.ErrValidation)
	}
	return &commands.DirectoryUser{
		Subject:  "local_" + uuid.NewString(),
		Username: params.Username,
		Email:    params.Email,
	}, nil
}

var (
	_ usecase.IdentityVerifier   = (*LocalVerifier)(nil)
	_ commands.IdentityDirectory = LocalDirectory{}
)
