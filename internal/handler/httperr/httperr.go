package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"minute-market/internal/pkg/errs"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string    `json:"message"`
		Kind    errs.Kind `json:"kind"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

var kindStatus = map[errs.Kind]int{
	errs.KindUnauthenticated:    http.StatusUnauthorized,
	errs.KindForbidden:          http.StatusForbidden,
	errs.KindNotOwner:           http.StatusForbidden,
	errs.KindValidation:         http.StatusBadRequest,
	errs.KindSelfTrade:          http.StatusBadRequest,
	errs.KindNotFound:           http.StatusNotFound,
	errs.KindConflict:           http.StatusConflict,
	errs.KindInvalidState:       http.StatusConflict,
	errs.KindInsufficientSupply: http.StatusConflict,
	errs.KindInconsistentState:  http.StatusConflict,
	errs.KindQuotaExceeded:      http.StatusUnprocessableEntity,
	errs.KindPriceNotSet:        http.StatusServiceUnavailable,
	errs.KindConfiguration:      http.StatusServiceUnavailable,
	errs.KindUpstream:           http.StatusBadGateway,
}

// StatusOf maps an error kind to its HTTP status, 500 for internal errors.
func StatusOf(kind errs.Kind) int {
	if s, ok := kindStatus[kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// FromError classifies err and aborts with the matching status. Internal
// errors never leak their message.
func FromError(c *gin.Context, err error) {
	kind := errs.KindOf(err)
	msg := "Internal server error"
	switch kind {
	case errs.KindInternal:
	case errs.KindUpstream:
		msg = "Upstream service failed"
	default:
		msg = errs.PublicMessage(err)
	}
	abort(c, StatusOf(kind), kind, err, msg, nil)
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	abort(c, status, errs.KindOf(err), err, msg, detail)
}

func abort(c *gin.Context, status int, kind errs.Kind, err error, msg string, detail any) {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Kind = kind
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
