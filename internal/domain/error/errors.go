package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance     = 4001
	CodeInvalidAmount           = 4002
	CodeInvalidUserID           = 4003
	CodeDuplicateTransaction    = 4004
	CodeMalformedPayload        = 4005
	CodeUnknownTransactionType  = 4006
	CodeMissingRoutingMetadata  = 4007
	CodeInvalidStatus           = 4008
	CodeRoutingMismatch         = 4009
	CodeInvalidSignature        = 4010
	CodeUnauthorized            = 4011
	CodeTransactionNotFound     = 4040
	CodeAccountNotFound         = 4041
	CodeTransitionForbidden     = 4090
	CodeAmountMismatch          = 4092
	CodeScanInProgress          = 4091
	CodeInvalidTransactionRef   = 4012
	CodeInvalidRequest          = 4000

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStoreUnavailable   = 5001
	CodeGatewayUnreachable = 5020
	CodeGatewayTimeout     = 5040
)

// Base error types
var (
	// ErrInvalidSignature is returned when a webhook body fails the authenticity check
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedPayload is returned when a webhook body is not valid JSON or lacks required fields
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnknownTransactionType is returned when the routing metadata names an unsupported type
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrMissingRoutingMetadata is returned when no known payload shape carries user and type
	ErrMissingRoutingMetadata = errors.New("missing routing metadata")

	// ErrInsufficientBalance is returned when a withdrawal would overdraw the account
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when an amount is not a positive value with at most two decimals
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when an amount or fee is negative
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountOverflow is returned when the amount does not fit the cents representation
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidUserID is returned when the user ID is empty
	ErrInvalidUserID = errors.New("user ID cannot be empty")

	// ErrInvalidTransactionRef is returned when the txRef is empty or too long
	ErrInvalidTransactionRef = errors.New("transaction reference cannot be empty")

	// ErrInvalidStatus is returned when a status is not one of the allowed values for the operation
	ErrInvalidStatus = errors.New("invalid transaction status")

	// ErrDuplicateTransaction is returned when a row with the same txRef already exists
	ErrDuplicateTransaction = errors.New("transaction with this reference already exists")

	// ErrConcurrentUpdate is returned when a conditional write lost a race with another writer
	ErrConcurrentUpdate = errors.New("transaction was modified concurrently")

	// ErrTransitionForbidden is returned for a state change the state machine does not allow
	ErrTransitionForbidden = errors.New("transition forbidden by transaction state machine")

	// ErrRoutingMismatch is returned when a request names a different user or type than the recorded row
	ErrRoutingMismatch = errors.New("request does not match recorded transaction")

	// ErrAmountMismatch is returned when the gateway settled a deposit for less than the recorded amount
	ErrAmountMismatch = errors.New("settled amount is below recorded amount")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAccountNotFound is returned when no balance account exists for the user
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnauthorized is returned when no administrator identity backs a privileged call
	ErrUnauthorized = errors.New("administrator identity required")

	// ErrScanInProgress is returned when a reconciliation scan is requested while one is running
	ErrScanInProgress = errors.New("reconciliation scan already in progress")

	// ErrGatewayUnreachable is returned when the gateway status API cannot be reached
	ErrGatewayUnreachable = errors.New("payment gateway unreachable")

	// ErrGatewayTimeout is returned when the gateway status API does not answer in time
	ErrGatewayTimeout = errors.New("payment gateway timeout")

	// ErrStoreUnavailable is returned when the transaction store cannot serve the operation
	ErrStoreUnavailable = errors.New("transaction store unavailable")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrUnknownTransactionType):
		return CodeUnknownTransactionType
	case errors.Is(err, ErrMissingRoutingMetadata):
		return CodeMissingRoutingMetadata
	case errors.Is(err, ErrMalformedPayload):
		return CodeMalformedPayload
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidTransactionRef):
		return CodeInvalidTransactionRef
	case errors.Is(err, ErrInvalidStatus):
		return CodeInvalidStatus
	case errors.Is(err, ErrDuplicateTransaction):
		return CodeDuplicateTransaction
	case errors.Is(err, ErrRoutingMismatch):
		return CodeRoutingMismatch
	case errors.Is(err, ErrTransitionForbidden):
		return CodeTransitionForbidden
	case errors.Is(err, ErrAmountMismatch):
		return CodeAmountMismatch
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrScanInProgress):
		return CodeScanInProgress
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrGatewayTimeout):
		return CodeGatewayTimeout
	case errors.Is(err, ErrGatewayUnreachable):
		return CodeGatewayUnreachable
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	default:
		return CodeInternalServer
	}
}

// IsMalformed reports whether err belongs to the malformed payload family.
// Unknown types and missing routing metadata are treated as malformed payloads.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedPayload) ||
		errors.Is(err, ErrUnknownTransactionType) ||
		errors.Is(err, ErrMissingRoutingMetadata)
}

// IsRetryable reports whether the operation that produced err may succeed if attempted again.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrDuplicateTransaction) || errors.Is(err, ErrConcurrentUpdate)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound) || errors.Is(err, ErrAccountNotFound)
}

// TransactionError represents an error related to applying a transaction
type TransactionError struct {
	TxRef  string
	UserID string
	Type   string
	Status string
	Amount string
	Reason string
	Err    error
}

// Error implements the error interface for TransactionError
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction error for %s (user: %s, amount: %s): %s - %v",
		e.TxRef, e.UserID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransactionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "transaction_error",
		"tx_ref":     e.TxRef,
		"user_id":    e.UserID,
		"type":       e.Type,
		"status":     e.Status,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewTransactionError creates a detailed transaction error
func NewTransactionError(txRef, userID, txType, status, amount, reason string, err error) error {
	return &TransactionError{
		TxRef:  txRef,
		UserID: userID,
		Type:   txType,
		Status: status,
		Amount: amount,
		Reason: reason,
		Err:    err,
	}
}

// InsufficientBalanceError provides detailed error information for a rejected debit
type InsufficientBalanceError struct {
	UserID      string
	Required    string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %s, available %s",
		e.UserID, e.Required, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"required":        e.Required,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID, required, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Required:    required,
		CurrBalance: currentBalance,
	}
}

// PayloadError describes why a webhook payload could not be turned into a notification
type PayloadError struct {
	Field  string
	Shape  string
	Detail string
	Err    error
}

// Error implements the error interface
func (e *PayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("%v: field %q: %s", e.Err, e.Field, e.Detail)
}

// Unwrap returns the underlying error
func (e *PayloadError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PayloadError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "payload_error",
		"field":      e.Field,
		"shape":      e.Shape,
		"detail":     e.Detail,
		"error_code": ErrorCode(e.Err),
	}
}

// NewPayloadError creates a payload error wrapping one of the malformed payload sentinels
func NewPayloadError(shape, field, detail string, err error) error {
	return &PayloadError{Field: field, Shape: shape, Detail: detail, Err: err}
}

// GatewayError describes a failed status query against the payment gateway
type GatewayError struct {
	TxRef      string
	StatusCode int
	Err        error
	Cause      error
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("gateway status query for %s failed (http %d): %v: %v", e.TxRef, e.StatusCode, e.Err, e.Cause)
	}
	return fmt.Sprintf("gateway status query for %s failed (http %d): %v", e.TxRef, e.StatusCode, e.Err)
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type":  "gateway_error",
		"tx_ref":      e.TxRef,
		"status_code": e.StatusCode,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
	if e.Cause != nil {
		fields["cause"] = e.Cause.Error()
	}
	return fields
}

// NewGatewayError creates a gateway error wrapping ErrGatewayUnreachable or ErrGatewayTimeout
func NewGatewayError(txRef string, statusCode int, err, cause error) error {
	return &GatewayError{TxRef: txRef, StatusCode: statusCode, Err: err, Cause: cause}
}

// Fields extracts structured log fields from err when it carries them.
func Fields(err error) map[string]any {
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	if err == nil {
		return map[string]any{}
	}
	return map[string]any{"error": err.Error(), "error_code": ErrorCode(err)}
}
