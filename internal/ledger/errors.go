package ledger

import (
	"errors"
	"fmt"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

// Reasons a transaction is ignored. An ignored transaction never changes
// any balance or dispute state.
var (
	ErrAccountLocked       = errors.New("account is locked")
	ErrInsufficientFunds   = errors.New("insufficient available funds")
	ErrUnknownTx           = errors.New("unknown transaction")
	ErrInvalidDisputeState = errors.New("invalid dispute state transition")
	ErrNotDisputable       = errors.New("transaction is not disputable")
	ErrDuplicateTx         = errors.New("duplicate transaction id")
	ErrZeroAmount          = errors.New("zero amount")
)

// ErrCorruptBalance reports a broken balance invariant. Unlike the reasons
// above it is an internal failure, not an ignored transaction.
var ErrCorruptBalance = errors.New("corrupt account balance")

// IgnoredError is returned for a transaction that was rejected as a whole.
type IgnoredError struct {
	Client models.ClientID
	Tx     models.TxID
	Kind   models.Kind
	Reason error
}

func (e *IgnoredError) Error() string {
	return fmt.Sprintf("%s client=%d tx=%d ignored: %v", e.Kind, e.Client, e.Tx, e.Reason)
}

func (e *IgnoredError) Unwrap() error { return e.Reason }

func ignored(tx models.Transaction, reason error) error {
	return &IgnoredError{
		Client: tx.ClientID(),
		Tx:     tx.TxID(),
		Kind:   tx.Kind(),
		Reason: reason,
	}
}

// IsIgnored reports whether err describes an ignored transaction.
func IsIgnored(err error) bool {
	var ie *IgnoredError
	return errors.As(err, &ie)
}
