package container_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/webhook"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database/dbtest"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/container"
)

const webhookSecret = "whsec_test"

type api struct {
	t      *testing.T
	router *gin.Engine
}

func (a api) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a api) webhook(body, signature string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, "/webhooks/gateway", body, map[string]string{"verif-hash": signature})
}

func (a api) balance(userID string) string {
	w := a.do(http.MethodGet, "/users/"+userID+"/balance", "", nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.BalanceResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Balance
}

func (a api) status(txRef string) (int, string) {
	w := a.do(http.MethodGet, "/transactions/"+txRef+"/status", "", nil)
	var resp dto.StatusResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp.Status
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestContainer_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := timeProvider.NewManualTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	env := dbtest.NewSQLite(t, clock)

	gatewayServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ref := r.URL.Query().Get("tx_ref")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":{"tx_ref":"` + ref + `","status":"failed"}}`))
	}))
	t.Cleanup(gatewayServer.Close)

	cfg := &config.Config{
		Environment: config.Test,
		Gateway:     config.GatewayConfig{BaseURL: gatewayServer.URL, SecretKey: "sk_test", Timeout: time.Second},
		Webhook: config.WebhookConfig{
			Secret: webhookSecret, SignatureHeader: "verif-hash", VerifySignature: true, EventLogSize: 50,
		},
		Reconciliation: config.ReconciliationConfig{
			StaleAfter: 5 * time.Minute, Interval: time.Minute, QueryTimeout: time.Second, BatchSize: 10, Concurrency: 2,
		},
		Ledger: config.LedgerConfig{DefaultListLimit: 20, MaxListLimit: 100},
		Admin:  config.AdminConfig{Users: []config.AdminUser{{ID: "1", Name: "alice", Token: "tok"}}},
	}
	app := container.Build(cfg, env.Manager, logger.NewNoopLogger(), clock)
	client := api{t: t, router: app.Router()}
	signer := webhook.NewSignatureVerifier(webhookSecret)
	admin := map[string]string{"Authorization": "Bearer tok"}

	deposit := `{"tx_ref":"TX1","status":"success","amount":1000,"meta":{"userId":"U1","transactionType":"Deposit"}}`

	t.Run("invalid signature writes nothing", func(t *testing.T) {
		w := client.webhook(deposit, signer.Sign([]byte(deposit+" ")))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		code, _ := client.status("TX1")
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("deposit webhook credits once", func(t *testing.T) {
		for i, want := range []string{"applied", "already_applied", "already_applied"} {
			w := client.webhook(deposit, signer.Sign([]byte(deposit)))

			require.Equal(t, http.StatusOK, w.Code, "delivery %d", i)
			assert.Equal(t, want, decode[dto.WebhookAck](t, w).Outcome)
		}

		assert.Equal(t, "1000.00", client.balance("U1"))
		_, status := client.status("TX1")
		assert.Equal(t, "completed", status)
	})

	t.Run("pending withdrawal does not debit", func(t *testing.T) {
		w := client.do(http.MethodPost, "/users/U1/withdrawals", `{"txRef":"TX2","amount":"500","fee":"12.5"}`, nil)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "1000.00", client.balance("U1"))
	})

	t.Run("reconciliation fails the stale withdrawal", func(t *testing.T) {
		clock.Advance(10 * time.Minute)

		w := client.do(http.MethodPost, "/admin/reconciliation/scan", "", admin)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		report := decode[usecase.ScanReport](t, w)
		assert.Equal(t, 1, report.Examined)
		assert.Equal(t, 1, report.Failed)
		_, status := client.status("TX2")
		assert.Equal(t, "failed", status)
		assert.Equal(t, "1000.00", client.balance("U1"))
	})

	t.Run("override cannot resurrect a failed withdrawal", func(t *testing.T) {
		w := client.do(http.MethodPost, "/admin/transactions/TX2/override", `{"status":"completed"}`, admin)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "rejected", decode[dto.OverrideResponse](t, w).Outcome)
		assert.Equal(t, "1000.00", client.balance("U1"))
	})

	t.Run("history and event log", func(t *testing.T) {
		w := client.do(http.MethodGet, "/users/U1/transactions", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		history := decode[dto.TransactionListResponse](t, w)
		require.Equal(t, 2, history.Count)
		assert.Equal(t, "TX2", history.Transactions[0].TxRef)
		assert.Equal(t, "reconciliation", history.Transactions[0].Source)

		w = client.do(http.MethodGet, "/admin/webhooks/events?limit=10", "", admin)
		require.Equal(t, http.StatusOK, w.Code)
		events := decode[dto.WebhookEventsResponse](t, w)
		require.Equal(t, 4, events.Count)
		assert.Equal(t, usecase.EventInvalidSignature, events.Events[events.Count-1].Kind)
	})
}
