package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models/events"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.TransactionProcessed) error
	Close() error
}
