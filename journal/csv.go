package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

// NewCSV creates (or truncates) a CSV journal at path and writes the header.
func NewCSV(path string) (*CSVJournal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"run_id", "seq", "kind", "client", "tx", "amount", "status", "reason", "detail", "time"}); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordOutcome(o Outcome) error {
	err := j.w.Write([]string{
		o.RunID,
		strconv.Itoa(o.Seq),
		o.Kind,
		strconv.FormatUint(uint64(o.Client), 10),
		strconv.FormatUint(uint64(o.Tx), 10),
		o.Amount,
		o.Status,
		o.Reason,
		o.Detail,
		o.Time.Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}
