package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/payments/ledger"
)

// TxID identifies a transaction. The input format caps it at 32 bits.
type TxID uint32

// Kind is the closed set of transaction kinds. The engine matches on it
// exhaustively; adding a kind means adding a case.
type Kind uint8

const (
	Deposit Kind = iota
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdrawal:
		return "withdrawal"
	case Dispute:
		return "dispute"
	case Resolve:
		return "resolve"
	case Chargeback:
		return "chargeback"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps the wire name of a transaction kind to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "deposit":
		return Deposit, nil
	case "withdrawal":
		return Withdrawal, nil
	case "dispute":
		return Dispute, nil
	case "resolve":
		return Resolve, nil
	case "chargeback":
		return Chargeback, nil
	}
	return 0, fmt.Errorf("unknown transaction type %q", s)
}

// HasAmount reports whether records of this kind carry an amount. Dispute
// lifecycle records reference a prior deposit's amount instead.
func (k Kind) HasAmount() bool {
	return k == Deposit || k == Withdrawal
}

// Transaction is one record of the input stream. Amount is only meaningful
// when Kind.HasAmount() is true.
type Transaction struct {
	Kind   Kind
	Client ledger.ClientID
	Tx     TxID
	Amount decimal.Decimal
}
