package replay

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/payments/engine"
	"github.com/rustyeddy/payments/feed"
	"github.com/rustyeddy/payments/journal"
	"github.com/rustyeddy/payments/ledger"
	"github.com/rustyeddy/payments/report"
)

type testJournal struct {
	outcomes []journal.Outcome
	closed   bool
}

func (j *testJournal) RecordOutcome(o journal.Outcome) error {
	j.outcomes = append(j.outcomes, o)
	return nil
}

func (j *testJournal) Close() error {
	j.closed = true
	return nil
}

func run(t *testing.T, input string) (*Runner, Stats, *testJournal) {
	t.Helper()

	src, err := feed.NewCSV(strings.NewReader(input))
	require.NoError(t, err)

	j := &testJournal{}
	r := NewRunner(engine.New(ledger.New(), nil), j, nil)
	stats, err := r.Run(src)
	require.NoError(t, err)
	return r, stats, j
}

func TestRunJournalsEveryRecord(t *testing.T) {
	t.Parallel()

	input := `type,client,tx,amount
deposit,1,1,10.0
withdrawal,1,2,20.0
bogus,1,3,
dispute,1,1,
`
	r, stats, j := run(t, input)

	assert.Equal(t, Stats{Records: 4, Committed: 2, Rejected: 1, Malformed: 1}, stats)
	require.Len(t, j.outcomes, 4)

	for i, o := range j.outcomes {
		assert.Equal(t, r.RunID(), o.RunID)
		assert.Equal(t, i+1, o.Seq)
		assert.False(t, o.Time.IsZero())
	}

	assert.Equal(t, journal.StatusCommitted, j.outcomes[0].Status)
	assert.Equal(t, "deposit", j.outcomes[0].Kind)
	assert.Equal(t, "10.0000", j.outcomes[0].Amount)

	assert.Equal(t, journal.StatusRejected, j.outcomes[1].Status)
	assert.Equal(t, ReasonInsufficientFunds, j.outcomes[1].Reason)

	assert.Equal(t, journal.StatusRejected, j.outcomes[2].Status)
	assert.Equal(t, ReasonMalformedRecord, j.outcomes[2].Reason)
	assert.Contains(t, j.outcomes[2].Detail, "unknown transaction type")

	assert.Equal(t, journal.StatusCommitted, j.outcomes[3].Status)
	assert.Equal(t, "dispute", j.outcomes[3].Kind)
	assert.Empty(t, j.outcomes[3].Amount)
}

func TestRunEndToEndReport(t *testing.T) {
	t.Parallel()

	input := `type,client,tx,amount
deposit,1,1,10.0
deposit,2,2,20.0
withdrawal,1,3,5.0
dispute,2,2,
chargeback,2,2,
`
	r, stats, _ := run(t, input)
	assert.Equal(t, 5, stats.Committed)

	var sb strings.Builder
	require.NoError(t, report.Write(&sb, r.Ledger().Accounts()))

	want := "client,available,held,total,locked\n" +
		"1,5.0000,0.0000,5.0000,false\n" +
		"2,0.0000,0.0000,0.0000,true\n"
	assert.Equal(t, want, sb.String())
}

// failingSource yields its queued transactions, then fails permanently.
type failingSource struct {
	txs []engine.Transaction
	err error
}

func (s *failingSource) Next() (engine.Transaction, error) {
	if len(s.txs) == 0 {
		return engine.Transaction{}, s.err
	}
	tx := s.txs[0]
	s.txs = s.txs[1:]
	return tx, nil
}

func TestRunAbortsOnSourceFailure(t *testing.T) {
	t.Parallel()

	readErr := errors.New("disk read failure")
	src := &failingSource{
		txs: []engine.Transaction{
			{Kind: engine.Deposit, Client: 1, Tx: 1, Amount: decimal.RequireFromString("10.0")},
			{Kind: engine.Deposit, Client: 1, Tx: 2, Amount: decimal.RequireFromString("5.0")},
		},
		err: readErr,
	}

	j := &testJournal{}
	r := NewRunner(engine.New(ledger.New(), nil), j, nil)

	stats, err := r.Run(src)
	require.ErrorIs(t, err, readErr)

	// Everything read before the failure was committed and journaled.
	assert.Equal(t, Stats{Records: 2, Committed: 2}, stats)
	assert.Len(t, j.outcomes, 2)
	assert.Equal(t, "15.0000", r.Ledger().GetOrCreate(1).Available.StringFixed(4))
}

func TestRunEmptyStream(t *testing.T) {
	t.Parallel()

	_, stats, j := run(t, "type,client,tx,amount\n")
	assert.Equal(t, Stats{}, stats)
	assert.Empty(t, j.outcomes)
}

func TestRunnersGetDistinctRunIDs(t *testing.T) {
	t.Parallel()

	e := engine.New(ledger.New(), nil)
	a := NewRunner(e, nil, nil)
	b := NewRunner(e, nil, nil)
	assert.NotEmpty(t, a.RunID())
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestReasonCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ReasonDuplicateTransaction, Reason(engine.ErrDuplicateTransaction))
	assert.Equal(t, ReasonInsufficientFunds, Reason(ledger.ErrInsufficientFunds))
	assert.Equal(t, ReasonAccountLocked, Reason(engine.ErrAccountLocked))
	assert.Equal(t, ReasonInvalidAmount, Reason(engine.ErrInvalidAmount))
	assert.Equal(t, ReasonTransactionNotFound, Reason(engine.ErrTransactionNotFound))
	assert.Equal(t, ReasonClientMismatch, Reason(engine.ErrClientMismatch))
	assert.Equal(t, ReasonInvalidState, Reason(engine.ErrInvalidState))
	assert.Equal(t, ReasonUnknown, Reason(assert.AnError))
}
