// Package response renders the success and error envelopes returned by every endpoint.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
)

// Envelope is the success body.
type Envelope struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	Payload   any    `json:"payload"`
}

// ErrorBody is the failure body.
type ErrorBody struct {
	Timestamp string         `json:"timestamp"`
	Path      string         `json:"path"`
	Status    int            `json:"status"`
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details"`
}

// Success writes a success envelope.
func Success(c *gin.Context, statusCode int, message string, payload any) {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	c.JSON(statusCode, Envelope{
		IsSuccess: true,
		Message:   message,
		Payload:   payload,
	})
}

// OK is Success with 200.
func OK(c *gin.Context, message string, payload any) {
	Success(c, http.StatusOK, message, payload)
}

// Created is Success with 201.
func Created(c *gin.Context, message string, payload any) {
	Success(c, http.StatusCreated, message, payload)
}

// Error writes the failure envelope for an application error.
func Error(c *gin.Context, appErr *apperror.Error) {
	details := make(map[string]any, len(appErr.Details))
	for k, v := range appErr.Details {
		details[k] = v
	}
	c.JSON(appErr.Status, NewErrorBody(c.Request.URL.Path, appErr, details))
}

// Internal writes INTERNAL_SERVER_ERROR. raw is exposed as details.error
// only when expose is set.
func Internal(c *gin.Context, raw error, expose bool) {
	details := map[string]any{}
	if expose && raw != nil {
		details["error"] = raw.Error()
	}
	c.JSON(apperror.ErrInternal.Status, NewErrorBody(c.Request.URL.Path, apperror.ErrInternal, details))
}

// NewErrorBody builds an ErrorBody stamped with the current time.
func NewErrorBody(path string, appErr *apperror.Error, details map[string]any) ErrorBody {
	if details == nil {
		details = map[string]any{}
	}
	return ErrorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      path,
		Status:    appErr.Status,
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   details,
	}
}
