package csvio

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWriteBalances(t *testing.T) {
	balances := []models.AccountSnapshot{
		{
			Client:    1,
			Available: decimal.RequireFromString("1.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.5"),
		},
		{
			Client:    2,
			Available: decimal.RequireFromString("-8"),
			Held:      decimal.RequireFromString("10.12345"),
			Total:     decimal.RequireFromString("2.12345"),
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteBalances(context.Background(), slices.Values(balances)))

	assert.Equal(t, "client,available,held,total,locked\n"+
		"1,1.5000,0.0000,1.5000,false\n"+
		"2,-8.0000,10.1235,2.1235,true\n", buf.String())
}

func TestWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteBalances(context.Background(), slices.Values([]models.AccountSnapshot(nil))))
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
