package dto

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.ErrInvalidSignature, http.StatusUnauthorized},
		{errs.ErrUnauthorized, http.StatusUnauthorized},
		{errs.NewPayloadError("meta", "userId", "missing", errs.ErrMissingRoutingMetadata), http.StatusBadRequest},
		{errs.ErrUnknownTransactionType, http.StatusBadRequest},
		{errs.ErrAmountOverflow, http.StatusBadRequest},
		{errs.ErrInvalidStatus, http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", errs.ErrTransactionNotFound), http.StatusNotFound},
		{errs.ErrAccountNotFound, http.StatusNotFound},
		{errs.NewInsufficientBalanceError("U1", "512.50", "0.00"), http.StatusUnprocessableEntity},
		{errs.ErrDuplicateTransaction, http.StatusConflict},
		{errs.ErrRoutingMismatch, http.StatusConflict},
		{errs.ErrTransitionForbidden, http.StatusConflict},
		{errs.ErrAmountMismatch, http.StatusConflict},
		{errs.ErrScanInProgress, http.StatusConflict},
		{errs.ErrGatewayTimeout, http.StatusGatewayTimeout},
		{errs.ErrGatewayUnreachable, http.StatusBadGateway},
		{errs.ErrStoreUnavailable, http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	client := NewErrorResponse(errs.ErrInvalidAmount)
	assert.Equal(t, ErrorResponse{Code: errs.CodeInvalidAmount, Message: errs.ErrInvalidAmount.Error()}, client)

	server := NewErrorResponse(fmt.Errorf("dial 10.0.0.5:5432: %w", errs.ErrStoreUnavailable))
	assert.Equal(t, errs.CodeStoreUnavailable, server.Code)
	assert.Equal(t, "Internal Server Error", server.Message, "server errors do not leak details")
}
