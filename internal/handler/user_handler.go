package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/models"
	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// UserHandler handles account endpoints
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

type UpdateMeRequest struct {
	Username string `json:"username" binding:"required,min=1,max=50"`
}

type MeResponse struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toMeResponse(u *models.User) MeResponse {
	return MeResponse{
		UserID:    u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// Me handles GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.OK(c, "Fetched profile.", toMeResponse(user))
}

// UpdateMe handles PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.UpdateUsername(c.Request.Context(), user.ID, req.Username)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Profile updated.", gin.H{"username": updated.Username})
}

// Withdraw handles DELETE /api/users/me
func (h *UserHandler) Withdraw(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), user.ID); err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Account withdrawn.", nil)
}
