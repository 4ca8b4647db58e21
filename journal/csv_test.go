package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "outcomes.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(data)))
	header, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"run_id", "seq", "kind", "client", "tx", "amount", "status", "reason", "detail", "time"}, header)
}

func TestCSVJournalRecordOutcome(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "outcomes.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordOutcome(Outcome{
		RunID:  "RUN1",
		Seq:    1,
		Kind:   "deposit",
		Client: 5,
		Tx:     9,
		Amount: "10.0000",
		Status: StatusCommitted,
		Time:   ts,
	}))
	require.NoError(t, j.RecordOutcome(Outcome{
		RunID:  "RUN1",
		Seq:    2,
		Kind:   "withdrawal",
		Client: 5,
		Tx:     10,
		Amount: "99.0000",
		Status: StatusRejected,
		Reason: "insufficient_funds",
		Time:   ts,
	}))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"RUN1", "1", "deposit", "5", "9", "10.0000", "committed", "", "", "2024-03-01T12:00:00Z"}, rows[1])
	assert.Equal(t, "rejected", rows[2][6])
	assert.Equal(t, "insufficient_funds", rows[2][7])
}
