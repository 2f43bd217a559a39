package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// LedgerHandler serves balances, transaction history and pending transaction requests
type LedgerHandler struct {
	ledger usecase.LedgerUseCase
	logger coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledger usecase.LedgerUseCase, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger: ledger,
		logger: logger,
	}
}

// GetBalance handles the GET /users/:userId/balance endpoint
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	account, err := h.ledger.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "Error getting user balance", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAccount(account))
}

// ListTransactions handles the GET /users/:userId/transactions endpoint
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	userID := c.Param("userId")
	limit, err := queryLimit(c)
	if err != nil {
		respondError(c, h.logger, "Invalid limit", err)
		return
	}

	txns, err := h.ledger.ListTransactions(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.logger, "Error listing transactions", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransactions(userID, txns))
}

// OpenDeposit handles the POST /users/:userId/deposits endpoint
func (h *LedgerHandler) OpenDeposit(c *gin.Context) {
	h.open(c, entity.TypeDeposit)
}

// OpenWithdrawal handles the POST /users/:userId/withdrawals endpoint
func (h *LedgerHandler) OpenWithdrawal(c *gin.Context) {
	h.open(c, entity.TypeWithdrawal)
}

func (h *LedgerHandler) open(c *gin.Context, txType entity.TransactionType) {
	var req dto.OpenTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	txn, err := h.ledger.OpenTransaction(c.Request.Context(), usecase.OpenRequest{
		TxRef:  req.TxRef,
		UserID: c.Param("userId"),
		Type:   txType,
		Amount: req.Amount,
		Fee:    req.Fee,
	})
	if err != nil {
		respondError(c, h.logger, "Pending transaction not recorded", err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromTransaction(txn))
}

// GetStatus handles the GET /transactions/:txRef/status endpoint
func (h *LedgerHandler) GetStatus(c *gin.Context) {
	txRef := c.Param("txRef")

	status, err := h.ledger.GetStatus(c.Request.Context(), txRef)
	if err != nil {
		respondError(c, h.logger, "Error getting transaction status", err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{TxRef: txRef, Status: string(status)})
}
