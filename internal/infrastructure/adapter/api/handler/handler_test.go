package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/identity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	midentity "github.com/amirhossein-jamali/payment-ledger/mocks/port/identity"
	muse "github.com/amirhossein-jamali/payment-ledger/mocks/port/usecase"
)

const adminToken = "Bearer ops-token"

type healthFunc func(ctx context.Context) database.HealthReport

func (f healthFunc) Check(ctx context.Context) database.HealthReport { return f(ctx) }

type fixture struct {
	webhook        *muse.MockWebhookUseCase
	ledger         *muse.MockLedgerUseCase
	reconciliation *muse.MockReconciliationUseCase
	override       *muse.MockOverrideUseCase
	resolver       *midentity.MockAdminResolver
	health         database.HealthReport
	maxBodyBytes   int64
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		webhook:        muse.NewMockWebhookUseCase(t),
		ledger:         muse.NewMockLedgerUseCase(t),
		reconciliation: muse.NewMockReconciliationUseCase(t),
		override:       muse.NewMockOverrideUseCase(t),
		resolver:       midentity.NewMockAdminResolver(t),
		health:         database.HealthReport{Healthy: true, Dialect: "sqlite"},
	}
}

func (f *fixture) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()
	clock := timeProvider.NewManualTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	router := gin.New()
	routes.SetupMiddlewares(router, log, clock)
	routes.SetupRoutes(router, routes.Handlers{
		Webhook: handler.NewWebhookHandler(f.webhook, "verif-hash", f.maxBodyBytes, log),
		Ledger:  handler.NewLedgerHandler(f.ledger, log),
		Admin:   handler.NewAdminHandler(f.reconciliation, f.override, f.webhook, log),
		Health: handler.NewHealthHandler(healthFunc(func(context.Context) database.HealthReport {
			return f.health
		})),
	}, middleware.AdminAuth(f.resolver, log))
	return router
}

func (f *fixture) asAdmin() {
	f.resolver.EXPECT().CurrentAdmin(mock.Anything, adminToken).Return(&identity.AdminIdentity{ID: "1", Name: "ops"}, nil)
}

func serve(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestWebhookHandler_Receive(t *testing.T) {
	body := `{"data":{"payment_link":{"reference":"TX1","status":"successful"}}}`

	tests := []struct {
		name       string
		setupMocks func(*muse.MockWebhookUseCase)
		wantStatus int
		wantCode   int
		wantAck    *dto.WebhookAck
	}{
		{
			name: "applied delivery is acknowledged",
			setupMocks: func(m *muse.MockWebhookUseCase) {
				m.EXPECT().Ingest(mock.Anything, mock.MatchedBy(func(d usecase.WebhookDelivery) bool {
					return string(d.Body) == body && d.Signature == "sig" && d.RequestID == "req-1"
				})).Return(&usecase.IngestResult{Outcome: usecase.OutcomeApplied, TxRef: "TX1", Status: entity.StatusCompleted}, nil)
			},
			wantStatus: http.StatusOK,
			wantAck:    &dto.WebhookAck{Status: "ok", Outcome: "applied", TxRef: "TX1", TransactionStatus: "completed"},
		},
		{
			name: "replay is acknowledged",
			setupMocks: func(m *muse.MockWebhookUseCase) {
				m.EXPECT().Ingest(mock.Anything, mock.Anything).
					Return(&usecase.IngestResult{Outcome: usecase.OutcomeAlreadyApplied, TxRef: "TX1", Status: entity.StatusCompleted}, nil)
			},
			wantStatus: http.StatusOK,
			wantAck:    &dto.WebhookAck{Status: "ok", Outcome: "already_applied", TxRef: "TX1", TransactionStatus: "completed"},
		},
		{
			name: "bad signature",
			setupMocks: func(m *muse.MockWebhookUseCase) {
				m.EXPECT().Ingest(mock.Anything, mock.Anything).Return(nil, errs.ErrInvalidSignature)
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   errs.CodeInvalidSignature,
		},
		{
			name: "malformed payload",
			setupMocks: func(m *muse.MockWebhookUseCase) {
				m.EXPECT().Ingest(mock.Anything, mock.Anything).
					Return(nil, errs.NewPayloadError("payment_link", "reference", "missing", errs.ErrMalformedPayload))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   errs.CodeMalformedPayload,
		},
		{
			name: "store failure asks the gateway to retry",
			setupMocks: func(m *muse.MockWebhookUseCase) {
				m.EXPECT().Ingest(mock.Anything, mock.Anything).Return(nil, errs.ErrStoreUnavailable)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   errs.CodeStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t)
			tt.setupMocks(f.webhook)

			// Act
			w := serve(f.router(), http.MethodPost, "/webhooks/gateway", body, map[string]string{
				"verif-hash":               "sig",
				middleware.RequestIDHeader: "req-1",
			})

			// Assert
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "req-1", w.Header().Get(middleware.RequestIDHeader))
			if tt.wantAck != nil {
				assert.Equal(t, *tt.wantAck, decode[dto.WebhookAck](t, w))
				return
			}
			resp := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			if tt.wantStatus >= http.StatusInternalServerError {
				assert.Equal(t, http.StatusText(tt.wantStatus), resp.Message)
			}
		})
	}
}

func TestWebhookHandler_BodyTooLarge(t *testing.T) {
	f := newFixture(t)
	f.maxBodyBytes = 16

	w := serve(f.router(), http.MethodPost, "/webhooks/gateway", strings.Repeat("x", 64), nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, errs.CodeMalformedPayload, decode[dto.ErrorResponse](t, w).Code)
}

func TestLedgerHandler(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	withdrawal := &entity.Transaction{
		TxRef: "TX2", UserID: "U1", Type: entity.TypeWithdrawal,
		AmountInCents: 50000, FeeInCents: 1250, Status: entity.StatusPending, CreatedAt: created,
	}

	t.Run("balance", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().GetBalance(mock.Anything, "U1").Return(&entity.Account{UserID: "U1", BalanceInCents: 48750}, nil)

		w := serve(f.router(), http.MethodGet, "/users/U1/balance", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.BalanceResponse{UserID: "U1", Balance: "487.50"}, decode[dto.BalanceResponse](t, w))
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().GetBalance(mock.Anything, "U9").Return(nil, errs.ErrAccountNotFound)

		w := serve(f.router(), http.MethodGet, "/users/U9/balance", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errs.CodeAccountNotFound, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("transactions with limit", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().ListTransactions(mock.Anything, "U1", 2).Return([]*entity.Transaction{withdrawal}, nil)

		w := serve(f.router(), http.MethodGet, "/users/U1/transactions?limit=2", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.TransactionListResponse](t, w)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, "500.00", resp.Transactions[0].Amount)
		assert.Equal(t, "12.50", resp.Transactions[0].Fee)
	})

	t.Run("bad limit", func(t *testing.T) {
		f := newFixture(t)

		w := serve(f.router(), http.MethodGet, "/users/U1/transactions?limit=-3", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("open withdrawal", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().OpenTransaction(mock.Anything, usecase.OpenRequest{
			TxRef: "TX2", UserID: "U1", Type: entity.TypeWithdrawal, Amount: "500", Fee: "12.5",
		}).Return(withdrawal, nil)

		w := serve(f.router(), http.MethodPost, "/users/U1/withdrawals", `{"txRef":"TX2","amount":"500","fee":"12.5"}`, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "pending", decode[dto.TransactionResponse](t, w).Status)
	})

	t.Run("open deposit needs a reference", func(t *testing.T) {
		f := newFixture(t)

		w := serve(f.router(), http.MethodPost, "/users/U1/deposits", `{"amount":"500"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.CodeInvalidRequest, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("uncovered withdrawal", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().OpenTransaction(mock.Anything, mock.Anything).
			Return(nil, errs.NewInsufficientBalanceError("U1", "512.50", "0.00"))

		w := serve(f.router(), http.MethodPost, "/users/U1/withdrawals", `{"txRef":"TX2","amount":"500","fee":"12.5"}`, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("status", func(t *testing.T) {
		f := newFixture(t)
		f.ledger.EXPECT().GetStatus(mock.Anything, "TX2").Return(entity.StatusFailed, nil)

		w := serve(f.router(), http.MethodGet, "/transactions/TX2/status", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, dto.StatusResponse{TxRef: "TX2", Status: "failed"}, decode[dto.StatusResponse](t, w))
	})
}

func TestAdminHandler(t *testing.T) {
	auth := map[string]string{"Authorization": adminToken}

	t.Run("requires an administrator", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.EXPECT().CurrentAdmin(mock.Anything, "").Return(nil, nil)

		w := serve(f.router(), http.MethodPost, "/admin/reconciliation/scan", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, errs.CodeUnauthorized, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("resolver failure", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.EXPECT().CurrentAdmin(mock.Anything, adminToken).Return(nil, errors.New("session store down"))

		w := serve(f.router(), http.MethodPost, "/admin/reconciliation/scan", "", auth)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("trigger scan", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()
		f.reconciliation.EXPECT().TriggerScan(mock.Anything).Return(&usecase.ScanReport{Examined: 3, Completed: 2, Failed: 1}, nil)

		w := serve(f.router(), http.MethodPost, "/admin/reconciliation/scan", "", auth)

		require.Equal(t, http.StatusOK, w.Code)
		report := decode[usecase.ScanReport](t, w)
		assert.Equal(t, 3, report.Examined)
		assert.Equal(t, 2, report.Completed)
	})

	t.Run("scan already running", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()
		f.reconciliation.EXPECT().TriggerScan(mock.Anything).Return(nil, errs.ErrScanInProgress)

		w := serve(f.router(), http.MethodPost, "/admin/reconciliation/scan", "", auth)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("partial scan still reports", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()
		f.reconciliation.EXPECT().TriggerScan(mock.Anything).Return(&usecase.ScanReport{Examined: 1}, context.DeadlineExceeded)

		w := serve(f.router(), http.MethodPost, "/admin/reconciliation/scan", "", auth)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("override applied", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()
		f.override.EXPECT().OverrideStatus(mock.Anything, "TX2", entity.StatusCompleted, mock.MatchedBy(func(a *identity.AdminIdentity) bool {
			return a != nil && a.Name == "ops"
		})).Return(&usecase.ApplyResult{Outcome: usecase.OutcomeApplied, BalanceInCents: 48750}, nil)

		w := serve(f.router(), http.MethodPost, "/admin/transactions/TX2/override", `{"status":"completed"}`, auth)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.OverrideResponse](t, w)
		assert.Equal(t, "applied", resp.Outcome)
		assert.Equal(t, "487.50", resp.Balance)
	})

	t.Run("override rejected", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()
		f.override.EXPECT().OverrideStatus(mock.Anything, "TX3", entity.StatusCompleted, mock.Anything).
			Return(&usecase.ApplyResult{Outcome: usecase.OutcomeRejected, Reason: errs.ErrTransitionForbidden}, nil)

		w := serve(f.router(), http.MethodPost, "/admin/transactions/TX3/override", `{"status":"completed"}`, auth)

		require.Equal(t, http.StatusConflict, w.Code)
		resp := decode[dto.OverrideResponse](t, w)
		assert.Equal(t, "rejected", resp.Outcome)
		assert.Equal(t, errs.ErrTransitionForbidden.Error(), resp.Reason)
		assert.Empty(t, resp.Balance)
	})

	t.Run("override to pending is refused", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()

		w := serve(f.router(), http.MethodPost, "/admin/transactions/TX2/override", `{"status":"pending"}`, auth)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("recent events default limit", func(t *testing.T) {
		f := newFixture(t)
		f.asAdmin()
		f.webhook.EXPECT().RecentEvents(100).Return([]usecase.WebhookEvent{{ID: "e1", Kind: usecase.EventInvalidSignature}})

		w := serve(f.router(), http.MethodGet, "/admin/webhooks/events", "", auth)

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[dto.WebhookEventsResponse](t, w)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, usecase.EventInvalidSignature, resp.Events[0].Kind)
	})
}

func TestHealthHandler(t *testing.T) {
	f := newFixture(t)

	w := serve(f.router(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	f.health = database.HealthReport{Error: "database is closed"}
	w = serve(f.router(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("database is closed")))
}
