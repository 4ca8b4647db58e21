// Package journal records the outcome of every processed record so a skipped
// record can be explained after the fact. It is diagnostics only: processing
// results never depend on what the journal does with an outcome.
package journal

import "time"

// Statuses for an Outcome.
const (
	StatusCommitted = "committed"
	StatusRejected  = "rejected"
)

// Outcome describes what happened to one input record. Rejected outcomes
// carry a stable reason code and, for malformed input, the parser's detail.
type Outcome struct {
	RunID  string
	Seq    int // 1-based position in the input stream
	Kind   string
	Client uint16
	Tx     uint32
	Amount string // formatted amount, empty for records without one
	Status string
	Reason string
	Detail string
	Time   time.Time
}

type Journal interface {
	RecordOutcome(Outcome) error
	Close() error
}

type nopJournal struct{}

func (nopJournal) RecordOutcome(Outcome) error { return nil }
func (nopJournal) Close() error                { return nil }

// Nop returns a journal that discards everything.
func Nop() Journal {
	return nopJournal{}
}
