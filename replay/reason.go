package replay

import (
	"errors"

	"github.com/rustyeddy/payments/engine"
	"github.com/rustyeddy/payments/ledger"
)

// Stable reason codes written to the journal. These are part of the journal
// format; renaming one breaks downstream queries.
const (
	ReasonMalformedRecord      = "malformed_record"
	ReasonDuplicateTransaction = "duplicate_transaction"
	ReasonInsufficientFunds    = "insufficient_funds"
	ReasonAccountLocked        = "account_locked"
	ReasonInvalidAmount        = "invalid_amount"
	ReasonTransactionNotFound  = "transaction_not_found"
	ReasonClientMismatch       = "client_mismatch"
	ReasonInvalidState         = "invalid_state"
	ReasonUnknown              = "unknown"
)

// Reason maps an engine rejection to its journal reason code.
func Reason(err error) string {
	switch {
	case errors.Is(err, engine.ErrDuplicateTransaction):
		return ReasonDuplicateTransaction
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, engine.ErrAccountLocked):
		return ReasonAccountLocked
	case errors.Is(err, engine.ErrInvalidAmount):
		return ReasonInvalidAmount
	case errors.Is(err, engine.ErrTransactionNotFound):
		return ReasonTransactionNotFound
	case errors.Is(err, engine.ErrClientMismatch):
		return ReasonClientMismatch
	case errors.Is(err, engine.ErrInvalidState):
		return ReasonInvalidState
	}
	return ReasonUnknown
}
