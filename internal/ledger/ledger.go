package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
	interfaces "github.com/sheikh-saqib/payments-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models/events"
	"go.uber.org/zap"
)

// AccountStore maps client ids to accounts for the duration of a run.
type AccountStore interface {
	GetAccount(client models.ClientID) (*Account, bool)
	SaveAccount(account *Account)
	ClientIDs() []models.ClientID
}

// Ledger applies transactions to the accounts held in its store.
//
// Transactions of one client are serialised by a per-client lock, so
// records for different clients may be applied from different goroutines.
// Within a client, order of application is the order of Apply calls.
type Ledger struct {
	store     AccountStore
	processor *Processor
	publisher interfaces.EventPublisher
	logger    *zap.Logger
	runID     string

	muMap map[models.ClientID]*sync.Mutex // one lock per client
	mapMu sync.Mutex                      // protects muMap
}

type Option func(*Ledger)

func WithProcessor(p *Processor) Option {
	return func(l *Ledger) { l.processor = p }
}

// WithPublisher sends one TransactionProcessed event per applied record.
func WithPublisher(p interfaces.EventPublisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithRunID(id string) Option {
	return func(l *Ledger) { l.runID = id }
}

func NewLedger(store AccountStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:     store,
		processor: NewProcessor(),
		logger:    zap.NewNop(),
		runID:     uuid.NewString(),
		muMap:     make(map[models.ClientID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RunID identifies this ledger instance in logs and events.
func (l *Ledger) RunID() string { return l.runID }

func (l *Ledger) getAccountLock(client models.ClientID) *sync.Mutex {
	l.mapMu.Lock()
	defer l.mapMu.Unlock()

	if _, exists := l.muMap[client]; !exists {
		l.muMap[client] = &sync.Mutex{}
	}
	return l.muMap[client]
}

// Apply processes one transaction against its client's account.
//
// An account is only added to the store once a transaction for it has been
// accepted; a client whose every transaction was ignored never appears in
// the snapshot. Apply returns nil for an accepted transaction, an
// *IgnoredError for an ignored one and any other error for internal
// failures.
func (l *Ledger) Apply(ctx context.Context, tx models.Transaction) error {
	mu := l.getAccountLock(tx.ClientID())
	mu.Lock()
	defer mu.Unlock()

	acct, exists := l.store.GetAccount(tx.ClientID())
	if !exists {
		acct = NewAccount(tx.ClientID())
	}

	err := l.processor.Process(acct, tx)
	switch {
	case err == nil:
		if !exists {
			l.store.SaveAccount(acct)
		}
	case IsIgnored(err):
		l.logger.Debug("transaction ignored",
			zap.Uint16("client", uint16(tx.ClientID())),
			zap.Uint32("tx", uint32(tx.TxID())),
			zap.String("type", string(tx.Kind())),
			zap.Error(errors.Unwrap(err)),
		)
	default:
		return fmt.Errorf("apply %s tx %d: %w", tx.Kind(), tx.TxID(), err)
	}

	l.publish(ctx, tx, err)
	return err
}

func (l *Ledger) publish(ctx context.Context, tx models.Transaction, result error) {
	if l.publisher == nil {
		return
	}

	event := events.TransactionProcessed{
		EventID:    uuid.NewString(),
		RunID:      l.runID,
		ClientID:   uint16(tx.ClientID()),
		TxID:       uint32(tx.TxID()),
		Type:       string(tx.Kind()),
		Accepted:   result == nil,
		OccurredAt: time.Now().UTC(),
	}
	if amount, ok := models.AmountOf(tx); ok {
		d := amount.Decimal()
		event.Amount = &d
	}
	if result != nil {
		event.Reason = errors.Unwrap(result).Error()
	}

	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn("publish transaction event failed",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}

// Account returns the current balances of client.
func (l *Ledger) Account(client models.ClientID) (models.AccountSnapshot, bool) {
	mu := l.getAccountLock(client)
	mu.Lock()
	defer mu.Unlock()

	acct, ok := l.store.GetAccount(client)
	if !ok {
		return models.AccountSnapshot{}, false
	}
	return acct.Snapshot(), true
}

// Snapshot yields the balances of every known client in ascending client
// order. The sequence is lazy and may be ranged over any number of times;
// each pass reflects the balances at the time it is iterated.
func (l *Ledger) Snapshot() iter.Seq[models.AccountSnapshot] {
	return func(yield func(models.AccountSnapshot) bool) {
		for _, client := range l.store.ClientIDs() {
			snap, ok := l.Account(client)
			if !ok {
				continue
			}
			if !yield(snap) {
				return
			}
		}
	}
}
