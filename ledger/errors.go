package ledger

import "errors"

// ErrInsufficientFunds means a debit asked for more than the account has
// available. The account is left untouched.
var ErrInsufficientFunds = errors.New("insufficient funds")
