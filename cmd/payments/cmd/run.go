package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/payments/config"
	"github.com/rustyeddy/payments/engine"
	"github.com/rustyeddy/payments/feed"
	"github.com/rustyeddy/payments/journal"
	"github.com/rustyeddy/payments/ledger"
	"github.com/rustyeddy/payments/logging"
	"github.com/rustyeddy/payments/replay"
	"github.com/rustyeddy/payments/report"
)

var runCmd = &cobra.Command{
	Use:   "run [input.csv]",
	Short: "Process a transaction CSV and print final account balances",
	Long: `Replay a transaction stream against per-client accounts.

The input is a CSV with a "type,client,tx,amount" header, read in order.
The account report is written as CSV to stdout (or --output). Rejected and
malformed records are skipped, logged, and journaled; they never stop a run.

Examples:
  payments run transactions.csv
  payments run transactions.csv --journal sqlite --journal-path runs.sqlite
  payments run --config run.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var (
	runConfigPath  string
	runOutput      string
	runJournalType string
	runJournalPath string
	runLogLevel    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "account report destination (default stdout)")
	runCmd.Flags().StringVar(&runJournalType, "journal", "", "outcome journal backend: none, csv or sqlite")
	runCmd.Flags().StringVar(&runJournalPath, "journal-path", "", "outcome journal file or database path")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "", "log level: debug, info, warn, error or silent")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	input := cfg.Input
	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("no input file: pass one as an argument or set input in the config")
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	in, err := openInput(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	src, err := feed.NewCSV(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	eng := engine.New(ledger.New(), logger)
	runner := replay.NewRunner(eng, j, logger)

	stats, err := runner.Run(src)
	if err != nil {
		return fmt.Errorf("process transactions: %w", err)
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := report.Write(out, eng.Ledger().Accounts()); err != nil {
		closeOut()
		return fmt.Errorf("write report: %w", err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "run %s: %d records (%d committed, %d rejected, %d malformed)\n",
		runner.RunID(), stats.Records, stats.Committed, stats.Rejected, stats.Malformed)

	return nil
}

// applyRunFlags lets explicit flags override whatever the config file says.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal.Type = runJournalType
	}
	if cmd.Flags().Changed("journal-path") {
		switch cfg.Journal.Type {
		case "sqlite":
			cfg.Journal.DBPath = runJournalPath
		default:
			cfg.Journal.File = runJournalPath
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = runLogLevel
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openJournal(cfg config.JournalConfig) (journal.Journal, error) {
	switch cfg.Type {
	case "csv":
		return journal.NewCSV(cfg.File)
	case "sqlite":
		return journal.NewSQLite(cfg.DBPath)
	}
	return journal.Nop(), nil
}
