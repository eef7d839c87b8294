package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// ErrorHandler renders the last error attached with c.Error. Application
// errors keep their code; anything else becomes INTERNAL_SERVER_ERROR.
func ErrorHandler(production bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		if appErr, ok := apperror.As(err); ok {
			if appErr.Status >= 500 {
				logger.Error("❌ [HTTP] Request failed", "request_id", RequestID(c), "path", c.Request.URL.Path, "error", err)
			} else {
				logger.Debug("⚠️ [HTTP] Request rejected", "request_id", RequestID(c), "code", appErr.Code)
			}
			response.Error(c, appErr)
			return
		}

		if database.IsConnectionError(err) {
			logger.Error("❌ [HTTP] Database unavailable", "request_id", RequestID(c), "error", err)
			response.Error(c, apperror.ErrDBConnection)
			return
		}

		logger.Error("❌ [HTTP] Unhandled error",
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		response.Internal(c, err, !production)
	}
}

// Recovery turns panics into the INTERNAL_SERVER_ERROR envelope.
func Recovery(production bool, logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("💥 [HTTP] Panic recovered",
			"request_id", RequestID(c),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		err, ok := recovered.(error)
		if !ok {
			err = errors.New("panic")
		}
		response.Internal(c, err, !production)
		c.Abort()
	})
}

// Fail attaches err for ErrorHandler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
