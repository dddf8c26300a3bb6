package device

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"minute-market/internal/pkg/errs"
)

var ErrEmptyToken = errs.Refine(errs.ErrValidation, "missing voip token")

const maxTokenLength = 512

type Device struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	VoIPToken string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(userID uuid.UUID, voipToken string, now time.Time) (*Device, error) {
	tok := strings.TrimSpace(voipToken)
	if tok == "" || len(tok) > maxTokenLength {
		return nil, ErrEmptyToken
	}
	return &Device{
		ID:        uuid.New(),
		UserID:    userID,
		VoIPToken: tok,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
