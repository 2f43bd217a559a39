package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler the router serves
type Handlers struct {
	Webhook *handler.WebhookHandler
	Ledger  *handler.LedgerHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, adminAuth gin.HandlerFunc) {
	router.GET("/health", h.Health.Health)

	// POST /webhooks/gateway
	router.POST("/webhooks/gateway", h.Webhook.Receive)

	userRoutes := router.Group("/users")
	{
		userRoutes.GET("/:userId/balance", h.Ledger.GetBalance)
		userRoutes.GET("/:userId/transactions", h.Ledger.ListTransactions)
		userRoutes.POST("/:userId/deposits", h.Ledger.OpenDeposit)
		userRoutes.POST("/:userId/withdrawals", h.Ledger.OpenWithdrawal)
	}

	router.GET("/transactions/:txRef/status", h.Ledger.GetStatus)

	adminRoutes := router.Group("/admin", adminAuth)
	{
		adminRoutes.POST("/reconciliation/scan", h.Admin.TriggerScan)
		adminRoutes.POST("/transactions/:txRef/override", h.Admin.OverrideStatus)
		adminRoutes.GET("/webhooks/events", h.Admin.RecentEvents)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	// Request id first so every later middleware can log it
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
}
