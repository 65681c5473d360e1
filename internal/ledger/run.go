package ledger

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/sheikh-saqib/payments-ledger-engine/internal/models"
	"go.uber.org/zap"
)

// RunStats counts what happened to the records of one run.
type RunStats struct {
	Read      int
	Malformed int
	Applied   int
	Ignored   int
}

// Run applies every record yielded by records, strictly in order.
//
// Malformed records are logged and skipped. Errors from the source that do
// not match models.ErrMalformedRecord are treated as unrecoverable and end
// the run.
func (l *Ledger) Run(ctx context.Context, records iter.Seq2[models.RawRecord, error]) (RunStats, error) {
	var stats RunStats

	for raw, err := range records {
		stats.Read++

		if err != nil {
			if !errors.Is(err, models.ErrMalformedRecord) {
				return stats, fmt.Errorf("read record: %w", err)
			}
			stats.Malformed++
			l.logger.Warn("skipping malformed record", zap.Int("line", raw.Line), zap.Error(err))
			continue
		}

		tx, err := models.ParseRecord(raw)
		if err != nil {
			stats.Malformed++
			l.logger.Warn("skipping malformed record", zap.Int("line", raw.Line), zap.Error(err))
			continue
		}

		switch err := l.Apply(ctx, tx); {
		case err == nil:
			stats.Applied++
		case IsIgnored(err):
			stats.Ignored++
		default:
			return stats, err
		}
	}

	l.logger.Info("run complete",
		zap.String("run_id", l.runID),
		zap.Int("read", stats.Read),
		zap.Int("applied", stats.Applied),
		zap.Int("ignored", stats.Ignored),
		zap.Int("malformed", stats.Malformed),
	)
	return stats, nil
}
