package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
)

// AdminHandler serves the operator endpoints. Routes are expected behind middleware.AdminAuth.
type AdminHandler struct {
	reconciliation usecase.ReconciliationUseCase
	override       usecase.OverrideUseCase
	webhook        usecase.WebhookUseCase
	logger         coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	reconciliation usecase.ReconciliationUseCase,
	override usecase.OverrideUseCase,
	webhook usecase.WebhookUseCase,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		reconciliation: reconciliation,
		override:       override,
		webhook:        webhook,
		logger:         logger,
	}
}

// TriggerScan handles the POST /admin/reconciliation/scan endpoint
func (h *AdminHandler) TriggerScan(c *gin.Context) {
	report, err := h.reconciliation.TriggerScan(c.Request.Context())
	if err != nil && report == nil {
		respondError(c, h.logger, "Reconciliation scan failed", err)
		return
	}
	if err != nil {
		h.logger.Warn("Reconciliation scan cut short", map[string]any{"error": err.Error()})
	}

	c.JSON(http.StatusOK, report)
}

// OverrideStatus handles the POST /admin/transactions/:txRef/override endpoint.
// Rejected overrides answer 409 with the ledger's reason.
func (h *AdminHandler) OverrideStatus(c *gin.Context) {
	var req dto.OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.override.OverrideStatus(
		c.Request.Context(),
		c.Param("txRef"),
		entity.TransactionStatus(req.Status),
		middleware.AdminFromContext(c),
	)
	if err != nil {
		respondError(c, h.logger, "Override failed", err)
		return
	}

	status := http.StatusOK
	if result.Outcome == usecase.OutcomeRejected {
		status = http.StatusConflict
	}
	c.JSON(status, dto.FromApplyResult(result))
}

// RecentEvents handles the GET /admin/webhooks/events endpoint
func (h *AdminHandler) RecentEvents(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, h.logger, "Invalid limit", err)
		return
	}
	if limit == 0 {
		limit = 100
	}

	events := h.webhook.RecentEvents(limit)
	c.JSON(http.StatusOK, dto.WebhookEventsResponse{Count: len(events), Events: events})
}
