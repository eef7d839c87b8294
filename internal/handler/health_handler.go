package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/bookstore/internal/database/service"
)

// HealthHandler serves /health
type HealthHandler struct {
	service service.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service service.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check answers 200 when the database is reachable and 503 otherwise.
func (h *HealthHandler) Check(c *gin.Context) {
	report := h.service.Check(c.Request.Context())

	status := http.StatusOK
	if report.Status != service.StatusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
