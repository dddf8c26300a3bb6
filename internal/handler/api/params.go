package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/queries"
)

var (
	ErrInvalidID    = errs.Refine(errs.ErrValidation, "invalid id")
	ErrInvalidQuery = errs.Refine(errs.ErrValidation, "invalid query parameter")
	ErrInvalidBody  = errs.Refine(errs.ErrValidation, "invalid request body")

	errUnauthenticated = errs.Refine(errs.ErrUnauthenticated, "authentication required")
)

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidID)
	}
	return id, nil
}

// page reads the limit and after query parameters.
func page(c *gin.Context) (*queries.Cursor, int, error) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, errs.Mark(err, ErrInvalidQuery)
		}
		limit = queries.ValidateLimit(n)
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	return cursor, limit, nil
}

func queryYear(c *gin.Context) (int, error) {
	v := c.Query("year")
	if v == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < 2000 || y > 9999 {
		return 0, ErrInvalidQuery
	}
	return y, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errs.Mark(err, ErrInvalidBody)
	}
	return nil
}
