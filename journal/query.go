package journal

import "time"

// RunSummary aggregates one run's journal rows.
type RunSummary struct {
	RunID     string
	Records   int
	Committed int
	Rejected  int
	Start     time.Time
}

// ListRuns returns a summary per run ID, oldest run first. ULID run IDs sort
// by creation time, so ordering by run ID is chronological even when several
// runs share one file.
func (j *SQLiteJournal) ListRuns() ([]RunSummary, error) {
	rows, err := j.db.Query(`
		SELECT run_id,
		       COUNT(*),
		       SUM(status = 'committed'),
		       SUM(status = 'rejected'),
		       MIN(time)
		FROM outcomes
		GROUP BY run_id
		ORDER BY run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var start string
		if err := rows.Scan(&rs.RunID, &rs.Records, &rs.Committed, &rs.Rejected, &start); err != nil {
			return nil, err
		}
		if rs.Start, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

// ListRejected returns every rejected outcome of a run in stream order.
func (j *SQLiteJournal) ListRejected(runID string) ([]Outcome, error) {
	rows, err := j.db.Query(`
		SELECT run_id, seq, kind, client, tx, amount, status, reason, detail, time
		FROM outcomes
		WHERE run_id = ? AND status = 'rejected'
		ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Outcome
	for rows.Next() {
		var o Outcome
		var ts string
		if err := rows.Scan(&o.RunID, &o.Seq, &o.Kind, &o.Client, &o.Tx,
			&o.Amount, &o.Status, &o.Reason, &o.Detail, &ts); err != nil {
			return nil, err
		}
		if o.Time, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
