package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"minute-market/internal/pkg/errs"
)

var ErrEmptySubject = errs.Refine(errs.ErrValidation, "missing identity subject")

// User is the local account bound to an identity-provider subject.
type User struct {
	id        uuid.UUID
	subject   string
	email     *Email
	role      Role
	createdAt time.Time
}

func NewUser(subject string, email *Email, role Role, now time.Time) (*User, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, ErrEmptySubject
	}
	return &User{
		id:        uuid.New(),
		subject:   subject,
		email:     email,
		role:      role,
		createdAt: now,
	}, nil
}

// Restore rebuilds a persisted user without validation.
func Restore(id uuid.UUID, subject string, email *Email, role Role, createdAt time.Time) *User {
	return &User{id: id, subject: subject, email: email, role: role, createdAt: createdAt}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Subject() string      { return u.subject }
func (u *User) Email() *Email        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) EmailString() *string {
	if u.email == nil {
		return nil
	}
	v := u.email.Value()
	return &v
}
