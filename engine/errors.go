package engine

import "errors"

// Rejection reasons. Every one of these is local to the offending record: the
// engine skips it and the stream continues as if the record never arrived.
var (
	// ErrDuplicateTransaction means the transaction ID was already applied.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrAccountLocked means the account took a chargeback and accepts no
	// new deposits or withdrawals.
	ErrAccountLocked = errors.New("account is locked")

	// ErrInvalidAmount means a deposit or withdrawal carried a negative amount.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrTransactionNotFound means a dispute, resolve or chargeback referenced
	// a transaction ID with no stored deposit.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrClientMismatch means the referenced deposit belongs to another client.
	ErrClientMismatch = errors.New("transaction belongs to a different client")

	// ErrInvalidState means the referenced deposit is not in the dispute state
	// the record requires (e.g. resolving a deposit that was never disputed).
	ErrInvalidState = errors.New("invalid dispute state")
)
