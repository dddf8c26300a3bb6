package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"minute-market/internal/handler/httperr"
	"minute-market/internal/pkg/errs"
)

// ErrorHandler renders errors that a handler attached with c.Error but did
// not write itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		if resp, ok := last.Meta.(httperr.Response); ok {
			c.JSON(resp.Status, resp)
			return
		}
		httperr.FromError(c, last.Err)
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					"error", rec,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"
				resp.Error.Kind = errs.KindInternal

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
