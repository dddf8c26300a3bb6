package user

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"minute-market/internal/pkg/errs"
)

var (
	ErrInvalidEmail  = errs.Refine(errs.ErrValidation, "invalid email format")
	ErrUsernameTaken = errs.Refine(errs.ErrConflict, "username already taken")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

// OptionalEmail parses s, treating an empty string as absent.
func OptionalEmail(s string) (*Email, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	e, err := NewEmail(s)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) LocalPart() string {
	local, _, _ := strings.Cut(e.value, "@")
	return local
}

const (
	UsernameAttempts = 6
	defaultUsername  = "user"
)

var usernameDisallowed = regexp.MustCompile(`[^a-z0-9._-]`)

// UsernameBase normalizes the preferred username, or the email local part
// when no hint is given.
func UsernameBase(hint, email string) string {
	src := strings.TrimSpace(hint)
	if src == "" {
		src, _, _ = strings.Cut(strings.TrimSpace(email), "@")
	}
	base := usernameDisallowed.ReplaceAllString(strings.ToLower(src), "")
	base = strings.Trim(base, "._-")
	if base == "" {
		return defaultUsername
	}
	return base
}

// UsernameCandidates yields base followed by attempts-1 suffixed variants.
func UsernameCandidates(base string, attempts int, suffix func() int) []string {
	if attempts <= 0 {
		return nil
	}
	if suffix == nil {
		suffix = RandomSuffix
	}
	out := make([]string, 0, attempts)
	out = append(out, base)
	for len(out) < attempts {
		out = append(out, base+strconv.Itoa(suffix()))
	}
	return out
}

// RandomSuffix returns a number in [1000, 9999].
func RandomSuffix() int {
	return 1000 + rand.IntN(9000)
}
