package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate the payment ledger: migrations, reconciliation, overrides and lookups",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(overrideCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(transactionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
