// Package report writes the final account balances.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/payments/ledger"
)

// Write emits one CSV row per account with a "client,available,held,total,locked"
// header. Balances are formatted with four fractional digits.
func Write(w io.Writer, accounts []ledger.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, a := range accounts {
		row := []string{
			strconv.FormatUint(uint64(a.Client), 10),
			a.Available.StringFixed(4),
			a.Held.StringFixed(4),
			a.Total().StringFixed(4),
			strconv.FormatBool(a.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
