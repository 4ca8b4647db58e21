package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/payments/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query outcome journal data",
	Long: `Query and display processing outcomes from a SQLite journal.

Subcommands:
  runs      - List recorded runs
  rejected  - List rejected records for a run

Examples:
  payments journal runs --db runs.sqlite
  payments journal rejected <run-id> --db runs.sqlite`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRejectedCmd = &cobra.Command{
	Use:   "rejected <run-id>",
	Short: "List rejected records for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRejected,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRejectedCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./payments.sqlite", "path to SQLite journal DB")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %s  records=%d committed=%d rejected=%d\n",
			r.RunID, r.Start.Format(time.RFC3339), r.Records, r.Committed, r.Rejected)
	}
	return nil
}

func runJournalRejected(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	outcomes, err := j.ListRejected(args[0])
	if err != nil {
		return fmt.Errorf("query outcomes: %w", err)
	}

	if len(outcomes) == 0 {
		fmt.Println("no rejected records")
		return nil
	}

	for _, o := range outcomes {
		line := fmt.Sprintf("#%d  %s  client=%d tx=%d  %s", o.Seq, o.Kind, o.Client, o.Tx, o.Reason)
		if o.Detail != "" {
			line += "  (" + o.Detail + ")"
		}
		fmt.Println(line)
	}
	return nil
}
