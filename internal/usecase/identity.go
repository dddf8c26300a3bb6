package usecase

import (
	"context"

	"github.com/google/uuid"

	"minute-market/internal/domain/user"
)

// Identity is what a verified bearer token says about its caller.
type Identity struct {
	Subject string
	Email   string
	Role    user.Role
}

// IdentityVerifier authenticates bearer tokens. Failures are marked errs.ErrUnauthenticated.
type IdentityVerifier interface {
	Verify(ctx context.Context, bearer string) (Identity, error)
}

// Principal is the authenticated local user a request acts as.
type Principal struct {
	UserID  uuid.UUID
	Subject string
	Role    user.Role
}

func (p Principal) IsAdmin() bool { return p.Role == user.RoleAdmin }

// PrincipalResolver maps a verified identity to its local user, creating it on first sight.
type PrincipalResolver interface {
	Resolve(ctx context.Context, id Identity) (Principal, error)
}
