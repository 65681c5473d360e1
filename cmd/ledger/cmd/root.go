// Package cmd provides the ledger command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Replay a transaction log against client accounts",
	Long: `ledger processes a CSV log of deposits, withdrawals, disputes,
resolves and chargebacks in order and prints the final balance of every
client as CSV on stdout.

Example:
  ledger process transactions.csv > accounts.csv`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default is ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newProcessCmd())
}
