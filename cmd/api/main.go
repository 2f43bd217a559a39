package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/container"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := cfg.Validate()
	if err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production: cfg.Environment == config.Production,
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	defer func() { _ = appLogger.Flush() }()

	for _, w := range warnings {
		appLogger.Warn("Configuration warning", map[string]any{"warning": w})
	}
	if !cfg.Webhook.VerifySignature {
		appLogger.Warn("Webhook signature verification is disabled", map[string]any{
			"environment":    cfg.Environment,
			"security_event": true,
		})
	}

	tp := timeProvider.NewRealTimeProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := container.New(ctx, cfg, appLogger, tp)
	if err != nil {
		appLogger.Error("Failed to initialize application", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	var background sync.WaitGroup
	if cfg.Reconciliation.Enabled {
		background.Add(1)
		go func() {
			defer background.Done()
			app.Poller.Run(ctx)
		}()
	}

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           app.Router(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":                 server.Addr,
			"env":                  cfg.Environment,
			"reconciliation":       cfg.Reconciliation.Enabled,
			"signature_verify":     cfg.Webhook.VerifySignature,
			"configured_admins":    app.Admins.Len(),
			"database_driver":      cfg.Database.Driver,
			"reconcile_stale_secs": cfg.Reconciliation.StaleAfter.Seconds(),
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
		stop()
	}

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// The poller stops on ctx cancellation; wait so no scan outlives the database
	background.Wait()

	appLogger.Info("Server exited gracefully", nil)
}
