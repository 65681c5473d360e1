package ledger

import (
	"fmt"
	"strings"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

// DuplicatePolicy decides what happens to a deposit or withdrawal whose tx
// id was already used by the same client.
type DuplicatePolicy int

const (
	// DuplicateReject ignores the second record entirely.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateCreditUntracked applies the money movement but keeps the
	// first record as the one later disputes refer to.
	DuplicateCreditUntracked
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateCreditUntracked:
		return "credit"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy parses "reject" or "credit".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return DuplicateReject, nil
	case "credit":
		return DuplicateCreditUntracked, nil
	default:
		return 0, fmt.Errorf("unknown duplicate tx policy: %q", s)
	}
}

// Processor drives one transaction at a time through validation, dispute
// lookup and balance mutation. It holds no per-account state.
type Processor struct {
	duplicates DuplicatePolicy
}

type ProcessorOption func(*Processor)

func WithDuplicatePolicy(p DuplicatePolicy) ProcessorOption {
	return func(pr *Processor) {
		pr.duplicates = p
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{duplicates: DuplicateReject}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process applies tx to acct. It returns nil when the transaction was
// accepted and an *IgnoredError when it was rejected; in the latter case
// acct and its dispute tracker are exactly as they were before the call.
func (p *Processor) Process(acct *Account, tx models.Transaction) error {
	if acct.Client() != tx.ClientID() {
		return fmt.Errorf("transaction for client %d applied to account %d", tx.ClientID(), acct.Client())
	}
	if acct.Locked() {
		return ignored(tx, ErrAccountLocked)
	}

	var err error
	switch t := tx.(type) {
	case models.Deposit:
		err = p.deposit(acct, t)
	case models.Withdrawal:
		err = p.withdraw(acct, t)
	case models.Dispute:
		err = p.dispute(acct, t)
	case models.Resolve:
		err = p.resolve(acct, t)
	case models.Chargeback:
		err = p.chargeback(acct, t)
	default:
		return fmt.Errorf("unsupported transaction type %T", tx)
	}
	if err != nil {
		return ignored(tx, err)
	}

	return acct.verify()
}

// checkMovement validates the preconditions shared by deposits and
// withdrawals and reports whether the tx id should be tracked.
func (p *Processor) checkMovement(acct *Account, tx models.TxID, amount models.Amount) (track bool, err error) {
	if amount.IsZero() {
		return false, ErrZeroAmount
	}
	if acct.disputes.Known(tx) {
		if p.duplicates == DuplicateReject {
			return false, ErrDuplicateTx
		}
		return false, nil
	}
	return true, nil
}

func (p *Processor) deposit(acct *Account, d models.Deposit) error {
	track, err := p.checkMovement(acct, d.Tx, d.Amount)
	if err != nil {
		return err
	}
	if err := acct.credit(d.Amount); err != nil {
		return err
	}
	if track {
		return acct.disputes.RecordDeposit(d.Tx, d.Amount)
	}
	return nil
}

func (p *Processor) withdraw(acct *Account, w models.Withdrawal) error {
	track, err := p.checkMovement(acct, w.Tx, w.Amount)
	if err != nil {
		return err
	}
	if err := acct.debit(w.Amount); err != nil {
		return err
	}
	if track {
		return acct.disputes.RecordWithdrawal(w.Tx, w.Amount)
	}
	return nil
}

// The dispute lifecycle handlers transition the tracker first: it is the
// only step that can fail, the account is already known to be unlocked.

func (p *Processor) dispute(acct *Account, d models.Dispute) error {
	amount, err := acct.disputes.BeginDispute(d.Tx)
	if err != nil {
		return err
	}
	return acct.hold(amount)
}

func (p *Processor) resolve(acct *Account, r models.Resolve) error {
	amount, err := acct.disputes.Resolve(r.Tx)
	if err != nil {
		return err
	}
	return acct.release(amount)
}

func (p *Processor) chargeback(acct *Account, c models.Chargeback) error {
	amount, err := acct.disputes.Chargeback(c.Tx)
	if err != nil {
		return err
	}
	return acct.seizeAndLock(amount)
}
