package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	service service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity *int `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// AddItem handles POST /api/carts/items
func (h *CartHandler) AddItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.service.AddItem(c.Request.Context(), user.ID, req.BookID, quantity)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Created(c, "Added to cart.", item)
}

// View handles GET /api/carts
func (h *CartHandler) View(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.service.View(c.Request.Context(), user.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	message := "Fetched cart."
	if len(view.Items) == 0 {
		message = "Cart is empty."
	}
	response.OK(c, message, view)
}

// UpdateItem handles PATCH /api/carts/items/:cart_item_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "cart_item_id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	removed, err := h.service.UpdateItem(c.Request.Context(), user.ID, itemID, *req.Quantity)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	if removed {
		response.OK(c, "Removed from cart.", nil)
		return
	}
	response.OK(c, "Quantity updated.", gin.H{"cart_item_id": itemID, "quantity": *req.Quantity})
}

// RemoveItem handles DELETE /api/carts/items/:cart_item_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "cart_item_id")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), user.ID, itemID); err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Removed from cart.", nil)
}
