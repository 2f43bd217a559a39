package dto

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse builds the response body for err
func NewErrorResponse(err error) ErrorResponse {
	status := HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	return ErrorResponse{Code: domainerr.ErrorCode(err), Message: message}
}

// HTTPStatus maps a domain error to its HTTP status code
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrInvalidSignature), errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case domainerr.IsMalformed(err),
		errors.Is(err, domainerr.ErrInvalidAmount),
		errors.Is(err, domainerr.ErrNegativeAmount),
		errors.Is(err, domainerr.ErrAmountOverflow),
		errors.Is(err, domainerr.ErrInvalidUserID),
		errors.Is(err, domainerr.ErrInvalidTransactionRef),
		errors.Is(err, domainerr.ErrInvalidStatus),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainerr.ErrDuplicateTransaction),
		errors.Is(err, domainerr.ErrRoutingMismatch),
		errors.Is(err, domainerr.ErrTransitionForbidden),
		errors.Is(err, domainerr.ErrAmountMismatch),
		errors.Is(err, domainerr.ErrScanInProgress):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrGatewayTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domainerr.ErrGatewayUnreachable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
