// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS outcomes (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	kind TEXT NOT NULL,
	client INTEGER NOT NULL,
	tx INTEGER NOT NULL,
	amount TEXT NOT NULL,
	status TEXT NOT NULL,
	reason TEXT NOT NULL,
	detail TEXT NOT NULL,
	time TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_outcomes_status ON outcomes(run_id, status);
`
