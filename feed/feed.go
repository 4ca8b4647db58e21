// Package feed reads transaction records from an external source.
package feed

import (
	"fmt"

	"github.com/rustyeddy/payments/engine"
)

// Source yields transaction records in stream order. Next returns io.EOF when
// the source is exhausted and *MalformedError for rows that could not be
// parsed; any other error means the source itself failed.
type Source interface {
	Next() (engine.Transaction, error)
}

// MalformedError marks a single unreadable record. It is recoverable: the
// caller skips the record and keeps reading.
type MalformedError struct {
	Record int // 1-based position in the stream, excluding the header
	Cause  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Record, e.Cause)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}
