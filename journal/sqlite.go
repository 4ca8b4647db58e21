package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite journal at path. Multiple runs can
// share one file; rows are keyed by run ID.
func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordOutcome(o Outcome) error {
	_, err := j.db.Exec(`
		INSERT INTO outcomes
		(run_id, seq, kind, client, tx, amount, status, reason, detail, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RunID, o.Seq, o.Kind, o.Client, o.Tx,
		o.Amount, o.Status, o.Reason, o.Detail,
		o.Time.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
