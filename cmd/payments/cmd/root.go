package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "payments",
	Short: "A transaction replay engine for per-client account balances",
	Long: `Payments replays an ordered stream of transaction records (deposits,
withdrawals, disputes, resolves, chargebacks) against per-client accounts
and emits the final balances as CSV.

It provides tools for:
  - Processing a transaction CSV into an account report
  - Journaling per-record outcomes to CSV or SQLite for diagnostics
  - Querying past runs and their rejected records
  - Generating and validating run configuration files`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
