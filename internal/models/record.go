package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is matched by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError describes why a raw record could not become a
// Transaction.
type MalformedRecordError struct {
	Field   string
	Message string
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrMalformedRecord, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrMalformedRecord, e.Message, e.Field)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func malformed(field, format string, args ...any) error {
	return &MalformedRecordError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RawRecord is one untyped row handed over by a record source. Amount is
// empty when the column is absent.
type RawRecord struct {
	Type   string
	Client string
	Tx     string
	Amount string

	// Line is the 1-based position in the source, 0 when unknown.
	Line int
}

// ParseRecord validates the shape of a raw record and builds the matching
// Transaction. Kind names are matched case-insensitively and every field is
// trimmed.
func ParseRecord(r RawRecord) (Transaction, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(r.Type)))
	switch kind {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
	case "":
		return nil, malformed("type", "type is required")
	default:
		return nil, malformed("type", "unknown transaction type %q", r.Type)
	}

	if strings.TrimSpace(r.Client) == "" {
		return nil, malformed("client", "client is required")
	}
	client, err := ParseClientID(r.Client)
	if err != nil {
		return nil, malformed("client", "invalid client %q", r.Client)
	}

	if strings.TrimSpace(r.Tx) == "" {
		return nil, malformed("tx", "tx is required")
	}
	tx, err := ParseTxID(r.Tx)
	if err != nil {
		return nil, malformed("tx", "invalid tx %q", r.Tx)
	}

	rawAmount := strings.TrimSpace(r.Amount)

	switch kind {
	case KindDeposit, KindWithdrawal:
		if rawAmount == "" {
			return nil, malformed("amount", "amount is required for %s", kind)
		}
		amount, err := ParseAmount(rawAmount)
		if err != nil {
			return nil, malformed("amount", "invalid amount %q: %v", r.Amount, err)
		}
		if kind == KindDeposit {
			return NewDeposit(client, tx, amount), nil
		}
		return NewWithdrawal(client, tx, amount), nil
	}

	if rawAmount != "" {
		return nil, malformed("amount", "amount is not allowed for %s", kind)
	}

	switch kind {
	case KindDispute:
		return NewDispute(client, tx), nil
	case KindResolve:
		return NewResolve(client, tx), nil
	default:
		return NewChargeback(client, tx), nil
	}
}
