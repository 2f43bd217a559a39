package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/config"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/container"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the ledger schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signalContext()
			defer stop()

			manager := database.NewManager(database.FromAppConfig(cfg), cliLogger(cfg), timeProvider.NewRealTimeProvider())
			if _, err := manager.Connect(ctx); err != nil {
				return err
			}
			defer func() { _ = manager.Close() }()

			if err := manager.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Schema is up to date")
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation scan over stale pending transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *container.Container) error {
				report, err := app.Poller.TriggerScan(ctx)
				if report == nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(report)
				}

				fmt.Printf("Examined:        %d\n", report.Examined)
				fmt.Printf("Completed:       %d\n", report.Completed)
				fmt.Printf("Failed:          %d\n", report.Failed)
				fmt.Printf("Still pending:   %d\n", report.StillPending)
				fmt.Printf("Inconclusive:    %d\n", report.Inconclusive)
				fmt.Printf("Already applied: %d\n", report.AlreadyApplied)
				fmt.Printf("Rejected:        %d\n", report.Rejected)
				for _, e := range report.Errors {
					fmt.Printf("  %s: %s\n", e.TxRef, e.Error)
				}
				return err
			})
		},
	}
}

func overrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override [txRef]",
		Short: "Force a pending transaction to completed or failed",
		Long: `Settle a pending transaction by hand after confirming the payment out of band.

The ledger's state machine still applies: terminal transactions are left unchanged
and a failed transaction can never be completed.

Examples:
  ledgerctl override TX42 --status completed --token "$PL_ADMIN_TOKEN"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawStatus, _ := cmd.Flags().GetString("status")
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				token = os.Getenv("PL_ADMIN_TOKEN")
			}
			target, err := entity.ParseTransactionStatus(rawStatus)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, app *container.Container) error {
				admin, err := app.Admins.CurrentAdmin(ctx, token)
				if err != nil {
					return err
				}
				if admin == nil {
					return errs.ErrUnauthorized
				}

				result, err := app.Override.OverrideStatus(ctx, args[0], target, admin)
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(dto.FromApplyResult(result))
				}
				fmt.Printf("Outcome: %s\n", result.Outcome)
				if result.Reason != nil {
					fmt.Printf("Reason:  %s\n", result.Reason)
				}
				if result.Transaction != nil {
					fmt.Printf("Status:  %s\n", result.Transaction.Status)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringP("status", "s", string(entity.StatusCompleted), "Target status (completed, failed)")
	cmd.Flags().StringP("token", "t", "", "Administrator token (defaults to PL_ADMIN_TOKEN)")

	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [txRef]",
		Short: "Show the recorded status of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *container.Container) error {
				status, err := app.Ledger.GetStatus(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(dto.StatusResponse{TxRef: args[0], Status: string(status)})
				}
				fmt.Println(status)
				return nil
			})
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [userId]",
		Short: "Show a user's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *container.Container) error {
				account, err := app.Ledger.GetBalance(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(dto.FromAccount(account))
				}
				fmt.Println(account.GetBalance())
				return nil
			})
		},
	}
}

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions [userId]",
		Short: "List a user's most recent transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			return withApp(func(ctx context.Context, app *container.Container) error {
				txns, err := app.Ledger.ListTransactions(ctx, args[0], limit)
				if err != nil {
					return err
				}
				if jsonOutput(cmd) {
					return printJSON(dto.FromTransactions(args[0], txns))
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TX REF\tTYPE\tAMOUNT\tFEE\tSTATUS\tSOURCE\tCREATED")
				for _, t := range txns {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						t.TxRef, t.Type, t.Amount(), t.Fee(), t.Status, t.Source, t.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum transactions")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cliLogger keeps stdout for command output
func cliLogger(cfg *config.Config) coreport.Logger {
	level := cfg.Logger.Level
	if level == "info" || level == "debug" {
		level = "warn"
	}
	return logger.NewZapLogger(logger.Options{Level: level, Format: "console", Output: "stderr"})
}

func withApp(fn func(ctx context.Context, app *container.Container) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	log := cliLogger(cfg)
	defer func() { _ = log.Flush() }()

	app, err := container.New(ctx, cfg, log, timeProvider.NewRealTimeProvider())
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return fn(ctx, app)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
