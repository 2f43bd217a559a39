package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *HTTPStatusClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPStatusClient(Config{BaseURL: server.URL + "/", SecretKey: "sk_test", Timeout: timeout}, logger.NewNoopLogger())
}

func TestHTTPStatusClient_QueryStatus(t *testing.T) {
	t.Run("maps a successful payment", func(t *testing.T) {
		// Arrange
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, verifyPath, r.URL.Path)
			assert.Equal(t, "TX1", r.URL.Query().Get("tx_ref"))
			assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"TX1","status":"successful","amount":1000}}`))
		}, time.Second)

		// Act
		report, err := client.QueryStatus(context.Background(), "TX1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.PaymentSucceeded, report.State)
		assert.Equal(t, "successful", report.RawStatus)
		assert.Equal(t, int64(100000), report.AmountInCents)
	})

	t.Run("maps a failed payment with a string amount", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"TX2","status":"failed","amount":"500.00"}}`))
		}, time.Second)

		report, err := client.QueryStatus(context.Background(), "TX2")

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentFailed, report.State)
		assert.Equal(t, int64(50000), report.AmountInCents)
	})

	t.Run("unknown reference is inconclusive", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, time.Second)

		report, err := client.QueryStatus(context.Background(), "TX3")

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentUnknown, report.State)
	})

	t.Run("answer for another reference is inconclusive", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"OTHER","status":"successful"}}`))
		}, time.Second)

		report, err := client.QueryStatus(context.Background(), "TX4")

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentUnknown, report.State)
	})

	t.Run("server error is unreachable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, time.Second)

		_, err := client.QueryStatus(context.Background(), "TX5")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrGatewayUnreachable)
		var gwErr *errs.GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, http.StatusBadGateway, gwErr.StatusCode)
	})

	t.Run("invalid json is unreachable", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}, time.Second)

		_, err := client.QueryStatus(context.Background(), "TX6")

		assert.ErrorIs(t, err, errs.ErrGatewayUnreachable)
	})

	t.Run("slow gateway times out", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, 50*time.Millisecond)
		defer close(release)

		_, err := client.QueryStatus(context.Background(), "TX7")

		assert.ErrorIs(t, err, errs.ErrGatewayTimeout)
	})

	t.Run("caller deadline is reported as timeout", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, 5*time.Second)
		defer close(release)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err := client.QueryStatus(ctx, "TX8")

		assert.ErrorIs(t, err, errs.ErrGatewayTimeout)
	})

	t.Run("closed server is unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()
		client := NewHTTPStatusClient(Config{BaseURL: url, Timeout: time.Second}, logger.NewNoopLogger())

		_, err := client.QueryStatus(context.Background(), "TX9")

		assert.ErrorIs(t, err, errs.ErrGatewayUnreachable)
	})
}
