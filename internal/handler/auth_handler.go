package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/apperror"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service service.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// Request/Response DTOs
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=1,max=72"`
	Username string `json:"username" binding:"required,min=1,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LoginUser struct {
	ID        uint   `json:"id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
}

type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	User         LoginUser `json:"user"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"token_type"`
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, err := h.service.Signup(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Created(c, "Signup succeeded.", gin.H{"user_id": userID})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed credentials are indistinguishable from wrong ones.
		middleware.Fail(c, apperror.ErrLoginFailed)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Login succeeded.", LoginResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		User: LoginUser{
			ID:        result.User.ID,
			Role:      string(result.User.Role),
			TokenType: "Bearer",
		},
	})
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Token refreshed.", RefreshResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
	})
}

// Logout handles POST /api/auth/logout. The bearer token is revoked even
// when it has already expired.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		middleware.Fail(c, apperror.ErrUnauthenticated)
		return
	}

	// The body is optional.
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.Fail(c, apperror.FromBinding(err))
		return
	}

	if err := h.service.Logout(c.Request.Context(), token, req.RefreshToken); err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out.", nil)
}
