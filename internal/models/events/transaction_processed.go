package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionProcessed records the outcome of one transaction.
type TransactionProcessed struct {
	EventID    string           `json:"event_id"`
	RunID      string           `json:"run_id"`
	ClientID   uint16           `json:"client_id"`
	TxID       uint32           `json:"tx_id"`
	Type       string           `json:"type"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Accepted   bool             `json:"accepted"`
	Reason     string           `json:"reason,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
