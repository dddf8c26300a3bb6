package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"minute-market/internal/pkg/errs"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.Refine(errs.ErrValidation, "invalid cursor")

// Keyset is the (created_at, id) position a page continues after.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (Keyset, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return Keyset{}, errs.Mark(err, ErrInvalidCursor)
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return Keyset{}, ErrInvalidCursor
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return Keyset{}, ErrInvalidCursor
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return Keyset{}, errs.Mark(err, ErrInvalidCursor)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Keyset{}, errs.Mark(err, ErrInvalidCursor)
	}
	return Keyset{CreatedAt: time.UnixMicro(ts).UTC(), ID: id}, nil
}

type Cursor struct {
	After string `json:"after,omitempty"`
}

// position decodes an optional cursor; nil means the first page.
func position(cursor *Cursor) (*Keyset, error) {
	if cursor == nil || cursor.After == "" {
		return nil, nil
	}
	ks, err := DecodeAfterCursor(cursor.After)
	if err != nil {
		return nil, err
	}
	return &ks, nil
}

// paginate trims a limit+1 result to limit and derives the next cursor.
func paginate[T any](rows []T, limit int, key func(T) Keyset) ([]T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	last := key(rows[limit-1])
	return rows[:limit], &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
