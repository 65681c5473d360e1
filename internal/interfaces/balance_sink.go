package interfaces

import (
	"context"
	"iter"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

// BalanceSink consumes the final account balances of a run.
type BalanceSink interface {
	WriteBalances(ctx context.Context, balances iter.Seq[models.AccountSnapshot]) error
}
