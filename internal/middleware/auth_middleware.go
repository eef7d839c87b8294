package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
)

// Context keys
const (
	ContextUserKey  = "currentUser"
	ContextTokenKey = "bearerToken"
)

// AuthMiddleware handles bearer token validation
type AuthMiddleware struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(service service.AuthService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		service: service,
		logger:  logger,
	}
}

// RequireAuth resolves the bearer token to an active user and stores it in
// the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			m.logger.Debug("⚠️ [Middleware] Missing or malformed Authorization header", "path", c.Request.URL.Path)
			Fail(c, apperror.ErrUnauthenticated)
			return
		}

		user, err := m.service.Authenticate(c.Request.Context(), token)
		if err != nil {
			m.logger.Debug("⚠️ [Middleware] Token rejected", "error", err)
			Fail(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", user.ID)

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			Fail(c, apperror.ErrUnauthenticated)
			return
		}
		if !user.IsAdmin() {
			m.logger.Warn("🚫 [Middleware] Admin route denied", "user_id", user.ID, "path", c.Request.URL.Path)
			Fail(c, apperror.ErrAccessDenied)
			return
		}
		c.Next()
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
