package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// WishlistHandler handles favorites endpoints
type WishlistHandler struct {
	service service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(service service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: service,
		logger:  logger,
	}
}

type AddWishlistRequest struct {
	BookID uint `json:"book_id" binding:"required"`
}

// Add handles POST /api/favorites
func (h *WishlistHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddWishlistRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.service.Add(c.Request.Context(), user.ID, req.BookID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Created(c, "Added to wishlist.", gin.H{"wishlist_id": entry.ID})
}

// List handles GET /api/favorites
func (h *WishlistHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := h.service.List(c.Request.Context(), user.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Fetched wishlist.", entries)
}

// Remove handles DELETE /api/favorites/:wishlist_id
func (h *WishlistHandler) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	wishlistID, ok := pathID(c, "wishlist_id")
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), user.ID, wishlistID); err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Removed from wishlist.", nil)
}
