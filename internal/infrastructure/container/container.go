// Package container wires the ledger's adapters and use cases from configuration
package container

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/override"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/reconciliation"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/webhook"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/gateway"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/identity"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
)

// Container owns the process-scoped components. Close releases the database.
type Container struct {
	Config *config.Config
	Logger coreport.Logger
	Time   coreport.TimeProvider

	Database *database.Manager
	UoW      persistence.UnitOfWork

	Ledger   *ledger.Service
	Mutator  *ledger.Mutator
	Events   *webhook.EventLog
	Webhook  *webhook.Ingester
	Poller   *reconciliation.Poller
	Override *override.Service
	Admins   *identity.StaticResolver
}

// New connects to the database, brings the schema up to date and builds every use case
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger, timeProvider coreport.TimeProvider) (*Container, error) {
	retry := database.DefaultRetryConfig()
	if cfg.Ledger.MaxRetries > 0 {
		retry.MaxRetries = cfg.Ledger.MaxRetries
	}

	dbManager := database.NewManager(database.FromAppConfig(cfg), logger, timeProvider).WithRetryConfig(retry)
	if _, err := dbManager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := dbManager.Migrate(ctx); err != nil {
		_ = dbManager.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return Build(cfg, dbManager, logger, timeProvider), nil
}

// Build assembles the use cases on top of an already connected database
func Build(cfg *config.Config, dbManager *database.Manager, logger coreport.Logger, timeProvider coreport.TimeProvider) *Container {
	uow := dbManager.CreateUnitOfWork()
	transactionRepo := uow.GetTransactionRepository(context.Background())

	mutator := ledger.NewMutator(uow, timeProvider, logger)
	ledgerService := ledger.NewService(uow, ledger.ListLimits{
		Default: cfg.Ledger.DefaultListLimit,
		Max:     cfg.Ledger.MaxListLimit,
	}, timeProvider, logger)

	events := webhook.NewEventLog(cfg.Webhook.EventLogSize, timeProvider)
	ingester := webhook.NewIngester(
		webhook.NewSignatureVerifier(cfg.Webhook.Secret),
		ledgerService.Guard(),
		mutator,
		events,
		webhook.Config{VerifySignature: cfg.Webhook.VerifySignature},
		logger,
	)

	statusClient := gateway.NewHTTPStatusClient(gateway.Config{
		BaseURL:   cfg.Gateway.BaseURL,
		SecretKey: cfg.Gateway.SecretKey,
		Timeout:   cfg.Gateway.Timeout,
	}, logger)
	poller := reconciliation.NewPoller(transactionRepo, statusClient, mutator, reconciliation.Config{
		StaleAfter:   cfg.Reconciliation.StaleAfter,
		Interval:     cfg.Reconciliation.Interval,
		BatchSize:    cfg.Reconciliation.BatchSize,
		Concurrency:  cfg.Reconciliation.Concurrency,
		QueryTimeout: cfg.Reconciliation.QueryTimeout,
	}, timeProvider, logger)

	admins := make([]identity.StaticAdmin, 0, len(cfg.Admin.Users))
	for _, u := range cfg.Admin.Users {
		admins = append(admins, identity.StaticAdmin{ID: u.ID, Name: u.Name, Token: u.Token})
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Time:     timeProvider,
		Database: dbManager,
		UoW:      uow,
		Ledger:   ledgerService,
		Mutator:  mutator,
		Events:   events,
		Webhook:  ingester,
		Poller:   poller,
		Override: override.NewService(transactionRepo, mutator, logger),
		Admins:   identity.NewStaticResolver(admins),
	}
}

// Router builds the HTTP router serving every endpoint
func (c *Container) Router() *gin.Engine {
	router := gin.New()
	routes.SetupMiddlewares(router, c.Logger, c.Time)
	routes.SetupRoutes(router, routes.Handlers{
		Webhook: handler.NewWebhookHandler(c.Webhook, c.Config.Webhook.SignatureHeader, c.Config.Webhook.MaxBodyBytes, c.Logger),
		Ledger:  handler.NewLedgerHandler(c.Ledger, c.Logger),
		Admin:   handler.NewAdminHandler(c.Poller, c.Override, c.Webhook, c.Logger),
		Health:  handler.NewHealthHandler(c.Database.HealthChecker()),
	}, middleware.AdminAuth(c.Admins, c.Logger))
	return router
}

// Close releases the database connection
func (c *Container) Close() error {
	return c.Database.Close()
}
