package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/identity"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	mcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
	midentity "github.com/amirhossein-jamali/payment-ledger/mocks/port/identity"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func get(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	router := newEngine()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, coreport.RequestIDFromContext(c.Request.Context()))
	})

	t.Run("propagates the caller's id", func(t *testing.T) {
		w := get(router, "/", map[string]string{middleware.RequestIDHeader: "req-42"})

		assert.Equal(t, "req-42", w.Body.String())
		assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("assigns one when missing or oversized", func(t *testing.T) {
		for _, incoming := range []string{"", strings.Repeat("a", 129)} {
			w := get(router, "/", map[string]string{middleware.RequestIDHeader: incoming})

			assigned := w.Header().Get(middleware.RequestIDHeader)
			assert.Len(t, assigned, 36)
			assert.Equal(t, assigned, w.Body.String())
		}
	})
}

func TestErrorHandler(t *testing.T) {
	router := newEngine()
	router.Use(middleware.ErrorHandler(logger.NewNoopLogger()))
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	router.GET("/attached", func(c *gin.Context) { _ = c.Error(errs.ErrTransactionNotFound) })
	router.GET("/written", func(c *gin.Context) {
		_ = c.Error(errs.ErrStoreUnavailable)
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})

	decode := func(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp
	}

	t.Run("panic becomes 500", func(t *testing.T) {
		w := get(router, "/panic", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, errs.CodeInternalServer, decode(t, w).Code)
	})

	t.Run("attached error is rendered", func(t *testing.T) {
		w := get(router, "/attached", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errs.CodeTransactionNotFound, decode(t, w).Code)
	})

	t.Run("handler response wins", func(t *testing.T) {
		w := get(router, "/written", nil)

		assert.Equal(t, http.StatusAccepted, w.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	t.Run("stores the administrator", func(t *testing.T) {
		resolver := midentity.NewMockAdminResolver(t)
		resolver.EXPECT().CurrentAdmin(mock.Anything, "Bearer t").Return(&identity.AdminIdentity{ID: "1", Name: "ops"}, nil)
		router := newEngine()
		router.GET("/", middleware.AdminAuth(resolver, logger.NewNoopLogger()), func(c *gin.Context) {
			c.String(http.StatusOK, middleware.AdminFromContext(c).Name)
		})

		w := get(router, "/", map[string]string{"Authorization": "Bearer t"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ops", w.Body.String())
	})

	t.Run("rejection is a security event", func(t *testing.T) {
		resolver := midentity.NewMockAdminResolver(t)
		resolver.EXPECT().CurrentAdmin(mock.Anything, "Bearer nope").Return(nil, nil)
		log := mcore.NewMockLogger(t)
		log.EXPECT().Warn("Administrator credential rejected", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["security_event"] == true && fields["path"] == "/"
		})).Once()
		router := newEngine()
		router.GET("/", middleware.AdminAuth(resolver, log), func(c *gin.Context) {
			t.Fatal("handler must not run")
		})

		w := get(router, "/", map[string]string{"Authorization": "Bearer nope"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("no administrator outside the middleware", func(t *testing.T) {
		router := newEngine()
		router.GET("/", func(c *gin.Context) {
			assert.Nil(t, middleware.AdminFromContext(c))
			c.Status(http.StatusNoContent)
		})

		assert.Equal(t, http.StatusNoContent, get(router, "/", nil).Code)
	})
}

func TestLogger(t *testing.T) {
	clock := timeProvider.NewManualTimeProvider(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	log := mcore.NewMockLogger(t)
	log.EXPECT().Warn("Request processed", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["status"] == http.StatusNotFound && fields["route"] == "/users/:userId" && fields["latency_ms"] == int64(250)
	})).Once()

	router := newEngine()
	router.Use(middleware.Logger(log, clock))
	router.GET("/users/:userId", func(c *gin.Context) {
		clock.Advance(250 * time.Millisecond)
		c.Status(http.StatusNotFound)
	})

	get(router, "/users/U1", nil)
}
