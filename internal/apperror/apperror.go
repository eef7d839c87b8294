// Package apperror defines the business error taxonomy surfaced at the HTTP boundary.
// Every expected failure carries a stable machine-readable code, a human-readable
// message and the HTTP status it maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Error is a typed business error.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]string
}

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on code so that copies produced by WithMessage/WithDetails still
// satisfy errors.Is against the predefined values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy carrying a more specific message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{Code: e.Code, Message: message, Status: e.Status, Details: e.Details}
}

// WithDetails returns a copy carrying per-field details.
func (e *Error) WithDetails(details map[string]string) *Error {
	return &Error{Code: e.Code, Message: e.Message, Status: e.Status, Details: details}
}

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Wrap annotates an unexpected error with a stack trace and context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}

// Predefined errors
var (
	// 400
	ErrInvalidInput = New("INVALID_INPUT_VALUE", "Input value is invalid.", http.StatusBadRequest)
	ErrOutOfStock   = New("OUT_OF_STOCK", "Requested quantity exceeds available stock.", http.StatusBadRequest)
	ErrEmptyOrder   = New("EMPTY_ORDER", "Order must contain at least one item.", http.StatusBadRequest)

	// 401
	ErrLoginFailed      = New("LOGIN_FAILED", "Email or password does not match.", http.StatusUnauthorized)
	ErrInvalidToken     = New("INVALID_TOKEN", "Token is invalid.", http.StatusUnauthorized)
	ErrExpiredToken     = New("EXPIRED_TOKEN", "Token has expired.", http.StatusUnauthorized)
	ErrLogoutToken      = New("LOGOUT_TOKEN", "Token has been logged out.", http.StatusUnauthorized)
	ErrUnauthenticated  = New("UNAUTHORIZED", "Could not validate credentials.", http.StatusUnauthorized)
	ErrAccountWithdrawn = New("ACCOUNT_WITHDRAWN", "Account has been withdrawn.", http.StatusUnauthorized)

	// 403
	ErrAccessDenied = New("ACCESS_DENIED", "Access denied.", http.StatusForbidden)

	// 404
	ErrResourceNotFound = New("RESOURCE_NOT_FOUND", "Resource not found.", http.StatusNotFound)
	ErrBookNotFound     = New("BOOK_NOT_FOUND", "Book not found.", http.StatusNotFound)

	// 409
	ErrEmailDuplication  = New("EMAIL_DUPLICATION", "Email already exists.", http.StatusConflict)
	ErrAlreadyExists     = New("ALREADY_EXISTS", "Resource already exists.", http.StatusConflict)
	ErrIllegalTransition = New("ILLEGAL_TRANSITION", "Order status transition is not allowed.", http.StatusConflict)
	ErrConflict          = New("CONFLICT", "Resource is in use.", http.StatusConflict)

	// 422
	ErrValidation = New("VALIDATION_FAILED", "Request payload is invalid.", http.StatusUnprocessableEntity)

	// 429
	ErrTooManyRequests = New("TOO_MANY_REQUESTS", "Too many requests. Please try again later.", http.StatusTooManyRequests)

	// 5xx
	ErrInternal     = New("INTERNAL_SERVER_ERROR", "Internal server error.", http.StatusInternalServerError)
	ErrDBConnection = New("DB_CONNECTION_ERROR", "Database connection failed.", http.StatusServiceUnavailable)
)
