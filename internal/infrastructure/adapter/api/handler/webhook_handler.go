package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// DefaultMaxWebhookBytes caps a webhook body when no limit is configured
const DefaultMaxWebhookBytes int64 = 1 << 20

// WebhookHandler receives gateway pushes
type WebhookHandler struct {
	webhook         usecase.WebhookUseCase
	signatureHeader string
	maxBodyBytes    int64
	logger          coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(
	webhook usecase.WebhookUseCase,
	signatureHeader string,
	maxBodyBytes int64,
	logger coreport.Logger,
) *WebhookHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxWebhookBytes
	}
	return &WebhookHandler{
		webhook:         webhook,
		signatureHeader: signatureHeader,
		maxBodyBytes:    maxBodyBytes,
		logger:          logger,
	}
}

// Receive handles the POST /webhooks/gateway endpoint.
// The body is passed on byte for byte so the signature is checked against what was sent.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrMalformedPayload),
				Message: "Webhook body too large",
			})
			return
		}
		respondError(c, h.logger, "Failed to read webhook body", errors.Join(domainerr.ErrMalformedPayload, err))
		return
	}

	result, err := h.webhook.Ingest(c.Request.Context(), usecase.WebhookDelivery{
		Body:       body,
		Signature:  c.GetHeader(h.signatureHeader),
		RemoteAddr: c.ClientIP(),
		RequestID:  coreport.RequestIDFromContext(c.Request.Context()),
	})
	if err != nil {
		respondError(c, h.logger, "Webhook not accepted", err)
		return
	}

	c.JSON(http.StatusOK, dto.WebhookAck{
		Status:            "ok",
		Outcome:           string(result.Outcome),
		TxRef:             result.TxRef,
		TransactionStatus: string(result.Status),
	})
}
