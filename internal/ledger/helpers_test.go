package ledger

import (
	"testing"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amt(s string) models.Amount { return models.MustParseAmount(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// balances captures everything an ignored transaction must leave untouched.
type balances struct {
	available string
	held      string
	locked    bool
	heldTotal string
	disputes  map[models.TxID]string
}

func stateOf(a *Account) balances {
	return balances{
		available: a.Available().String(),
		held:      a.Held().String(),
		locked:    a.Locked(),
		heldTotal: a.Disputes().HeldTotal().String(),
		disputes:  trackerState(a.Disputes()),
	}
}

func trackerState(t *DisputeTracker) map[models.TxID]string {
	out := make(map[models.TxID]string, len(t.entries))
	for id, e := range t.entries {
		out[id] = string(e.kind) + ":" + e.amount.String() + ":" + e.state.String()
	}
	return out
}
