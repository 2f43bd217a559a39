package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
)

// HealthChecker reports the state of the store
type HealthChecker interface {
	Check(ctx context.Context) database.HealthReport
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	checker HealthChecker
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.checker.Check(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
