package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// AdminHandler handles admin-only user management and statistics
type AdminHandler struct {
	userService  service.UserService
	statsService service.StatsService
	logger       *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService service.UserService, statsService service.StatsService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		statsService: statsService,
		logger:       logger,
	}
}

// PurgeUser handles DELETE /api/admin/users/:user_id
func (h *AdminHandler) PurgeUser(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.userService.Purge(c.Request.Context(), userID); err != nil {
		middleware.Fail(c, err)
		return
	}

	h.logger.Info("🗑️ [AdminHandler] User purged", "user_id", userID, "by", admin.ID)
	response.OK(c, "User deleted.", gin.H{"user_id": userID})
}

// TotalUsers handles GET /api/admin/stats/users
func (h *AdminHandler) TotalUsers(c *gin.Context) {
	n, err := h.statsService.TotalUsers(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.OK(c, "OK", gin.H{"total_users": n})
}

// TotalSales handles GET /api/admin/stats/sales
func (h *AdminHandler) TotalSales(c *gin.Context) {
	n, err := h.statsService.TotalSales(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.OK(c, "OK", gin.H{"total_sales": n})
}

// TotalBooks handles GET /api/admin/stats/books
func (h *AdminHandler) TotalBooks(c *gin.Context) {
	n, err := h.statsService.TotalBooks(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	response.OK(c, "OK", gin.H{"total_books": n})
}
