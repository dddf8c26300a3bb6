package user

import "minute-market/internal/pkg/errs"

type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

var ErrInvalidRole = errs.Refine(errs.ErrValidation, "invalid role")

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }
