package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/gateway"
)

const (
	verifyPath      = "/transactions/verify_by_reference"
	maxResponseSize = 1 << 20
	defaultTimeout  = 10 * time.Second
)

// Config holds the gateway status API settings
type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// HTTPStatusClient queries the gateway's verify-by-reference endpoint
type HTTPStatusClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     coreport.Logger
}

var _ gateway.StatusClient = (*HTTPStatusClient)(nil)

// NewHTTPStatusClient creates a status client. A zero timeout selects 10 seconds.
func NewHTTPStatusClient(cfg Config, logger coreport.Logger) *HTTPStatusClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPStatusClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(map[string]any{"component": "gateway_client"}),
	}
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		TxRef  string           `json:"tx_ref"`
		Status string           `json:"status"`
		Amount *decimal.Decimal `json:"amount"`
	} `json:"data"`
}

// QueryStatus asks the gateway for the state of txRef.
// An unknown reference is reported as PaymentUnknown rather than an error.
func (c *HTTPStatusClient) QueryStatus(ctx context.Context, txRef string) (*gateway.StatusReport, error) {
	endpoint := c.baseURL + verifyPath + "?tx_ref=" + url.QueryEscape(txRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.NewGatewayError(txRef, 0, errs.ErrGatewayUnreachable, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
	}
	if requestID := coreport.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewGatewayError(txRef, 0, classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errs.NewGatewayError(txRef, resp.StatusCode, classifyTransportError(err), err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Debug("Gateway does not know the reference", map[string]any{"tx_ref": txRef})
		return &gateway.StatusReport{TxRef: txRef, State: entity.PaymentUnknown, RawStatus: "not_found"}, nil
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return nil, errs.NewGatewayError(txRef, resp.StatusCode, errs.ErrGatewayUnreachable,
			fmt.Errorf("unexpected status %s", resp.Status))
	case resp.StatusCode >= 400:
		return nil, errs.NewGatewayError(txRef, resp.StatusCode, errs.ErrGatewayUnreachable,
			fmt.Errorf("request refused: %s", strings.TrimSpace(string(body))))
	}

	var parsed verifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errs.NewGatewayError(txRef, resp.StatusCode, errs.ErrGatewayUnreachable,
			fmt.Errorf("decode response: %w", err))
	}
	if parsed.Data == nil {
		return &gateway.StatusReport{TxRef: txRef, State: entity.PaymentUnknown, RawStatus: parsed.Status}, nil
	}

	report := &gateway.StatusReport{
		TxRef:     txRef,
		State:     entity.ClassifyGatewayStatus(parsed.Data.Status),
		RawStatus: parsed.Data.Status,
	}
	if parsed.Data.TxRef != "" && parsed.Data.TxRef != txRef {
		c.logger.Warn("Gateway answered for a different reference", map[string]any{
			"tx_ref":          txRef,
			"reported_tx_ref": parsed.Data.TxRef,
		})
		report.State = entity.PaymentUnknown
	}
	if parsed.Data.Amount != nil {
		if cents, err := entity.AmountFromDecimal(*parsed.Data.Amount); err == nil {
			report.AmountInCents = cents
		}
	}
	return report, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.ErrGatewayTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.ErrGatewayTimeout
	}
	return errs.ErrGatewayUnreachable
}
