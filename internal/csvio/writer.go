package csvio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"

	interfaces "github.com/sheikh-saqib/payments-ledger-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
)

var balanceHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders account balances as CSV, one row per client with amounts
// at four decimal places.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteBalances(_ context.Context, balances iter.Seq[models.AccountSnapshot]) error {
	cw := csv.NewWriter(w.w)

	if err := cw.Write(balanceHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for b := range balances {
		row := []string{
			b.Client.String(),
			b.Available.StringFixed(models.AmountPlaces),
			b.Held.StringFixed(models.AmountPlaces),
			b.Total.StringFixed(models.AmountPlaces),
			strconv.FormatBool(b.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write client %d: %w", b.Client, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

var _ interfaces.BalanceSink = (*Writer)(nil)
