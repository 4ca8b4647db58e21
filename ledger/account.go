package ledger

import "github.com/shopspring/decimal"

// ClientID identifies an account holder. The input format caps it at 16 bits.
type ClientID uint16

// Account is a snapshot of one client's balances. Total is always derived
// from Available+Held, never stored, so the total invariant cannot drift.
type Account struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// Total returns the account's total funds.
func (a Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}
