package token

import "minute-market/internal/pkg/errs"

type Status string

const (
	StatusActive  Status = "active"
	StatusListed  Status = "listed"
	StatusRetired Status = "retired"
)

var ErrInvalidStatus = errs.Refine(errs.ErrValidation, "invalid token status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusListed, StatusRetired:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// Held statuses count towards a user's yearly quota.
var HeldStatuses = []Status{StatusActive, StatusListed}
