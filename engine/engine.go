// Package engine applies an ordered stream of transaction records to a
// ledger, enforcing the dispute lifecycle and the per-record domain rules.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/payments/ledger"
)

// disputeState tracks where a stored deposit is in its dispute lifecycle:
// normal -> disputed -> (resolved | chargedBack). The last two are terminal.
type disputeState uint8

const (
	stateNormal disputeState = iota
	stateDisputed
	stateResolved
	stateChargedBack
)

// depositEntry is the retained record of a successfully applied deposit.
// Deposits are the only disputable kind, so nothing else is stored here.
// Entries are never pruned: a dispute may arrive arbitrarily late.
type depositEntry struct {
	client ledger.ClientID
	amount decimal.Decimal
	state  disputeState
}

// Engine processes transactions one at a time, strictly in input order. It
// exclusively owns its ledger and deposit history for the run; there is no
// locking because there is no concurrent access.
type Engine struct {
	ledger   *ledger.Ledger
	seen     map[TxID]struct{}
	deposits map[TxID]*depositEntry
	log      *zap.Logger
}

// New returns an engine over l. A nil logger disables rejection logging.
func New(l *ledger.Ledger, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		ledger:   l,
		seen:     make(map[TxID]struct{}),
		deposits: make(map[TxID]*depositEntry),
		log:      log,
	}
}

// Ledger returns the ledger the engine mutates.
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// Process applies one transaction. A non-nil error is a rejection: the record
// had no effect and the caller should carry on with the next one. Rejected
// records do not reserve their transaction ID.
func (e *Engine) Process(tx Transaction) error {
	var err error
	switch tx.Kind {
	case Deposit:
		err = e.deposit(tx)
	case Withdrawal:
		err = e.withdraw(tx)
	case Dispute:
		err = e.dispute(tx)
	case Resolve:
		err = e.resolve(tx)
	case Chargeback:
		err = e.chargeback(tx)
	default:
		err = fmt.Errorf("unknown transaction kind %d", uint8(tx.Kind))
	}
	if err != nil {
		e.log.Debug("transaction rejected",
			zap.Stringer("kind", tx.Kind),
			zap.Uint16("client", uint16(tx.Client)),
			zap.Uint32("tx", uint32(tx.Tx)),
			zap.Error(err))
	}
	return err
}

func (e *Engine) deposit(tx Transaction) error {
	acct := e.ledger.GetOrCreate(tx.Client)
	if acct.Locked {
		return ErrAccountLocked
	}
	if _, dup := e.seen[tx.Tx]; dup {
		return ErrDuplicateTransaction
	}
	if tx.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	e.ledger.CreditAvailable(tx.Client, tx.Amount)
	e.seen[tx.Tx] = struct{}{}
	e.deposits[tx.Tx] = &depositEntry{client: tx.Client, amount: tx.Amount}
	return nil
}

func (e *Engine) withdraw(tx Transaction) error {
	acct := e.ledger.GetOrCreate(tx.Client)
	if acct.Locked {
		return ErrAccountLocked
	}
	if _, dup := e.seen[tx.Tx]; dup {
		return ErrDuplicateTransaction
	}
	if tx.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if err := e.ledger.DebitAvailable(tx.Client, tx.Amount); err != nil {
		return err
	}

	// Withdrawn funds have left the system, so the withdrawal is not stored
	// as disputable. Its ID still counts for duplicate detection.
	e.seen[tx.Tx] = struct{}{}
	return nil
}

// lookup resolves a dispute lifecycle record against the stored deposit it
// references. Lock state is deliberately not checked: a frozen account must
// still be able to finish its open disputes.
func (e *Engine) lookup(tx Transaction, want disputeState) (*depositEntry, error) {
	entry, ok := e.deposits[tx.Tx]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	if entry.client != tx.Client {
		return nil, ErrClientMismatch
	}
	if entry.state != want {
		return nil, ErrInvalidState
	}
	return entry, nil
}

func (e *Engine) dispute(tx Transaction) error {
	entry, err := e.lookup(tx, stateNormal)
	if err != nil {
		return err
	}
	e.ledger.MoveToHeld(tx.Client, entry.amount)
	entry.state = stateDisputed
	return nil
}

func (e *Engine) resolve(tx Transaction) error {
	entry, err := e.lookup(tx, stateDisputed)
	if err != nil {
		return err
	}
	e.ledger.MoveFromHeld(tx.Client, entry.amount)
	entry.state = stateResolved
	return nil
}

func (e *Engine) chargeback(tx Transaction) error {
	entry, err := e.lookup(tx, stateDisputed)
	if err != nil {
		return err
	}
	e.ledger.SeizeHeld(tx.Client, entry.amount)
	entry.state = stateChargedBack
	return nil
}
