package ledger

import (
	"fmt"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
)

// Account holds the balances of one client. The total is always derived
// from available and held, never stored.
//
// Available may become negative when a deposit is disputed after part of
// it was withdrawn. That is a legitimate ledger state, not an error.
type Account struct {
	client    models.ClientID
	available decimal.Decimal
	held      decimal.Decimal
	locked    bool
	disputes  *DisputeTracker
}

// NewAccount creates an empty, unlocked account.
func NewAccount(client models.ClientID) *Account {
	return &Account{
		client:   client,
		disputes: NewDisputeTracker(),
	}
}

func (a *Account) Client() models.ClientID    { return a.client }
func (a *Account) Available() decimal.Decimal { return a.available }
func (a *Account) Held() decimal.Decimal      { return a.held }
func (a *Account) Total() decimal.Decimal     { return a.available.Add(a.held) }
func (a *Account) Locked() bool               { return a.locked }
func (a *Account) Disputes() *DisputeTracker  { return a.disputes }

// Snapshot returns a copy of the current balances.
func (a *Account) Snapshot() models.AccountSnapshot {
	return models.AccountSnapshot{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.Total(),
		Locked:    a.locked,
	}
}

func (a *Account) credit(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.available = a.available.Add(amount.Decimal())
	return nil
}

func (a *Account) debit(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	if a.available.LessThan(amount.Decimal()) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amount.Decimal())
	return nil
}

func (a *Account) hold(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.available = a.available.Sub(amount.Decimal())
	a.held = a.held.Add(amount.Decimal())
	return nil
}

func (a *Account) release(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.held = a.held.Sub(amount.Decimal())
	a.available = a.available.Add(amount.Decimal())
	return nil
}

// seizeAndLock removes held funds from the ledger entirely and locks the
// account.
func (a *Account) seizeAndLock(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.held = a.held.Sub(amount.Decimal())
	a.locked = true
	return nil
}

// verify checks that held funds equal the sum of open disputes.
func (a *Account) verify() error {
	want := a.disputes.HeldTotal()
	if a.held.IsNegative() || !a.held.Equal(want) {
		return fmt.Errorf("%w: client %d held=%s disputed=%s", ErrCorruptBalance, a.client, a.held, want)
	}
	return nil
}
