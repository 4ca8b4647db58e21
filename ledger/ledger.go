// Package ledger keeps the per-client accounts for a processing run.
//
// Accounts are created lazily on first reference and live for the whole run.
// Every mutation moves value atomically: it either fully applies or leaves the
// account unchanged, so available+held always equals the account total.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is the aggregate of all accounts seen during a run. It is not safe
// for concurrent use; the transaction engine is its only writer.
type Ledger struct {
	accounts map[ClientID]*Account
}

// New returns an empty in-memory ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[ClientID]*Account)}
}

func (l *Ledger) getOrCreate(id ClientID) *Account {
	a, ok := l.accounts[id]
	if !ok {
		a = &Account{Client: id}
		l.accounts[id] = a
	}
	return a
}

// GetOrCreate returns a snapshot of the client's account, creating an empty
// one if this is the first record referencing the client.
func (l *Ledger) GetOrCreate(id ClientID) Account {
	return *l.getOrCreate(id)
}

// IsLocked reports whether the client's account exists and is locked.
func (l *Ledger) IsLocked(id ClientID) bool {
	a, ok := l.accounts[id]
	return ok && a.Locked
}

// CreditAvailable adds amount to the client's available funds.
func (l *Ledger) CreditAvailable(id ClientID, amount decimal.Decimal) {
	a := l.getOrCreate(id)
	a.Available = a.Available.Add(amount)
}

// DebitAvailable removes amount from the client's available funds. It fails
// with ErrInsufficientFunds, leaving the account unchanged, if the account
// does not have amount available.
func (l *Ledger) DebitAvailable(id ClientID, amount decimal.Decimal) error {
	a := l.getOrCreate(id)
	if amount.GreaterThan(a.Available) {
		return ErrInsufficientFunds
	}
	a.Available = a.Available.Sub(amount)
	return nil
}

// MoveToHeld freezes amount pending dispute resolution. Available may go
// negative here: the disputed deposit can already have been spent by later
// withdrawals, and the hold still has to cover it.
func (l *Ledger) MoveToHeld(id ClientID, amount decimal.Decimal) {
	a := l.getOrCreate(id)
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// MoveFromHeld releases a hold back to available funds (dispute resolved).
func (l *Ledger) MoveFromHeld(id ClientID, amount decimal.Decimal) {
	a := l.getOrCreate(id)
	a.Held = a.Held.Sub(amount)
	a.Available = a.Available.Add(amount)
}

// SeizeHeld removes held funds from the account entirely (chargeback) and
// locks the account against new deposits and withdrawals.
func (l *Ledger) SeizeHeld(id ClientID, amount decimal.Decimal) {
	a := l.getOrCreate(id)
	a.Held = a.Held.Sub(amount)
	a.Locked = true
}

// Accounts returns a snapshot of every account, sorted by client ID.
func (l *Ledger) Accounts() []Account {
	out := make([]Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}
