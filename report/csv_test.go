package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/payments/ledger"
)

func TestWriteFormatsFourDigits(t *testing.T) {
	t.Parallel()

	accounts := []ledger.Account{
		{Client: 1, Available: decimal.RequireFromString("1.5"), Held: decimal.RequireFromString("0.25")},
		{Client: 2, Available: decimal.RequireFromString("-8"), Held: decimal.RequireFromString("10"), Locked: true},
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, accounts))

	want := "client,available,held,total,locked\n" +
		"1,1.5000,0.2500,1.7500,false\n" +
		"2,-8.0000,10.0000,2.0000,true\n"
	assert.Equal(t, want, sb.String())
}

func TestWriteEmptyLedger(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, Write(&sb, nil))
	assert.Equal(t, "client,available,held,total,locked\n", sb.String())
}
