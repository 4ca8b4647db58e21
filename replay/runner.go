// Package replay drives a transaction source through the engine, journaling
// the outcome of every record along the way.
package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/payments/engine"
	"github.com/rustyeddy/payments/feed"
	"github.com/rustyeddy/payments/journal"
	"github.com/rustyeddy/payments/ledger"
	"github.com/rustyeddy/payments/pkg/id"
)

// Stats counts what happened to a run's records.
type Stats struct {
	Records   int
	Committed int
	Rejected  int
	Malformed int
}

// Runner consumes a record source one record at a time. Each record is fully
// resolved (committed or rejected, outcome journaled) before the next is
// read. Rejections never stop the run; only source or journal failures do.
type Runner struct {
	engine  *engine.Engine
	journal journal.Journal
	log     *zap.Logger
	runID   string
	clock   func() time.Time
}

// NewRunner wires an engine to an outcome journal. Nil journal and logger
// default to no-ops. Each runner tags its journal rows with a fresh run ID.
func NewRunner(e *engine.Engine, j journal.Journal, log *zap.Logger) *Runner {
	if j == nil {
		j = journal.Nop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		engine:  e,
		journal: j,
		log:     log,
		runID:   id.New(),
		clock:   time.Now,
	}
}

// RunID returns the identifier tagging this runner's journal rows.
func (r *Runner) RunID() string {
	return r.runID
}

// Run processes src to exhaustion, strictly in source order.
func (r *Runner) Run(src feed.Source) (Stats, error) {
	var stats Stats

	for {
		tx, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		var malformed *feed.MalformedError
		if errors.As(err, &malformed) {
			stats.Records++
			stats.Malformed++
			r.log.Warn("malformed record skipped", zap.Error(malformed))
			if jerr := r.journal.RecordOutcome(journal.Outcome{
				RunID:  r.runID,
				Seq:    stats.Records,
				Status: journal.StatusRejected,
				Reason: ReasonMalformedRecord,
				Detail: malformed.Cause.Error(),
				Time:   r.clock(),
			}); jerr != nil {
				return stats, fmt.Errorf("journal outcome: %w", jerr)
			}
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("read record: %w", err)
		}

		stats.Records++
		outcome := journal.Outcome{
			RunID:  r.runID,
			Seq:    stats.Records,
			Kind:   tx.Kind.String(),
			Client: uint16(tx.Client),
			Tx:     uint32(tx.Tx),
			Time:   r.clock(),
		}
		if tx.Kind.HasAmount() {
			outcome.Amount = tx.Amount.StringFixed(4)
		}

		if perr := r.engine.Process(tx); perr != nil {
			stats.Rejected++
			outcome.Status = journal.StatusRejected
			outcome.Reason = Reason(perr)
		} else {
			stats.Committed++
			outcome.Status = journal.StatusCommitted
		}

		if jerr := r.journal.RecordOutcome(outcome); jerr != nil {
			return stats, fmt.Errorf("journal outcome: %w", jerr)
		}
	}

	r.log.Info("run complete",
		zap.String("run_id", r.runID),
		zap.Int("records", stats.Records),
		zap.Int("committed", stats.Committed),
		zap.Int("rejected", stats.Rejected),
		zap.Int("malformed", stats.Malformed))

	return stats, nil
}

// Ledger exposes the final account states for reporting.
func (r *Runner) Ledger() *ledger.Ledger {
	return r.engine.Ledger()
}
