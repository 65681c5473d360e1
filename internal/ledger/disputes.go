package ledger

import (
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
)

// DisputeState is the lifecycle position of a tracked deposit.
type DisputeState int

const (
	NotDisputed DisputeState = iota
	Disputed
	Resolved
	ChargedBack
)

func (s DisputeState) String() string {
	switch s {
	case NotDisputed:
		return "not_disputed"
	case Disputed:
		return "disputed"
	case Resolved:
		return "resolved"
	case ChargedBack:
		return "charged_back"
	default:
		return "unknown"
	}
}

type trackedTx struct {
	kind   models.Kind
	amount models.Amount
	state  DisputeState
}

// DisputeTracker remembers the deposits and withdrawals of one client so
// that later dispute, resolve and chargeback records can be correlated.
// Entries are never removed; Resolved and ChargedBack are terminal.
//
// Every method either succeeds completely or leaves the tracker untouched.
type DisputeTracker struct {
	entries  map[models.TxID]*trackedTx
	disputed decimal.Decimal
}

func NewDisputeTracker() *DisputeTracker {
	return &DisputeTracker{entries: make(map[models.TxID]*trackedTx)}
}

// Known reports whether tx was recorded by a deposit or a withdrawal.
func (t *DisputeTracker) Known(tx models.TxID) bool {
	_, ok := t.entries[tx]
	return ok
}

// State returns the dispute state of tx.
func (t *DisputeTracker) State(tx models.TxID) (DisputeState, bool) {
	e, ok := t.entries[tx]
	if !ok {
		return NotDisputed, false
	}
	return e.state, true
}

// RecordDeposit registers a disputable deposit.
func (t *DisputeTracker) RecordDeposit(tx models.TxID, amount models.Amount) error {
	return t.record(tx, models.KindDeposit, amount)
}

// RecordWithdrawal registers a withdrawal id so it is not reused. Withdrawals
// cannot be disputed.
func (t *DisputeTracker) RecordWithdrawal(tx models.TxID, amount models.Amount) error {
	return t.record(tx, models.KindWithdrawal, amount)
}

func (t *DisputeTracker) record(tx models.TxID, kind models.Kind, amount models.Amount) error {
	if _, ok := t.entries[tx]; ok {
		return ErrDuplicateTx
	}
	t.entries[tx] = &trackedTx{kind: kind, amount: amount, state: NotDisputed}
	return nil
}

// BeginDispute moves tx from NotDisputed to Disputed and returns the
// deposited amount.
func (t *DisputeTracker) BeginDispute(tx models.TxID) (models.Amount, error) {
	return t.transition(tx, NotDisputed, Disputed)
}

// Resolve moves tx from Disputed to Resolved.
func (t *DisputeTracker) Resolve(tx models.TxID) (models.Amount, error) {
	return t.transition(tx, Disputed, Resolved)
}

// Chargeback moves tx from Disputed to ChargedBack.
func (t *DisputeTracker) Chargeback(tx models.TxID) (models.Amount, error) {
	return t.transition(tx, Disputed, ChargedBack)
}

func (t *DisputeTracker) transition(tx models.TxID, from, to DisputeState) (models.Amount, error) {
	e, ok := t.entries[tx]
	if !ok {
		return models.Amount{}, ErrUnknownTx
	}
	if e.kind != models.KindDeposit {
		return models.Amount{}, ErrNotDisputable
	}
	if e.state != from {
		return models.Amount{}, ErrInvalidDisputeState
	}
	e.state = to

	switch {
	case to == Disputed:
		t.disputed = t.disputed.Add(e.amount.Decimal())
	case from == Disputed:
		t.disputed = t.disputed.Sub(e.amount.Decimal())
	}
	return e.amount, nil
}

// HeldTotal is the sum of the deposits currently under dispute.
func (t *DisputeTracker) HeldTotal() decimal.Decimal {
	return t.disputed
}
