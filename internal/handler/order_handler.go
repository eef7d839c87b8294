package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
	"github.com/EgehanKilicarslan/bookstore/internal/middleware"
	"github.com/EgehanKilicarslan/bookstore/internal/response"
)

// OrderHandler handles order placement and admin status changes
type OrderHandler struct {
	service service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type OrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// CreateOrderRequest leaves the item count to the service so an empty list
// reports EMPTY_ORDER.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLineInput{BookID: item.BookID, Quantity: item.Quantity})
	}

	order, err := h.service.Create(c.Request.Context(), user.ID, lines)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.Created(c, "Order placed.", gin.H{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})
}

// ListMine handles GET /api/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := h.service.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Fetched orders.", orders)
}

// UpdateStatus handles PATCH /api/admin/orders/:order_id
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	response.OK(c, "Order status updated.", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}
