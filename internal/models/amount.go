package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits every amount is kept at.
const AmountPlaces = 4

// AmountIntegerDigits bounds the integer part of an amount so balances fit
// NUMERIC(20,4) columns.
const AmountIntegerDigits = 16

// maxFractionDigits bounds the fractional part of a parsed amount before it
// is rounded to AmountPlaces.
const maxFractionDigits = 28

var amountLimit = decimal.New(1, AmountIntegerDigits)

// ClientID identifies the owner of an account.
type ClientID uint16

// ParseClientID parses a decimal client identifier.
func ParseClientID(s string) (ClientID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, err
	}
	return ClientID(v), nil
}

func (c ClientID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// TxID identifies a deposit or withdrawal within one client's history.
type TxID uint32

// ParseTxID parses a decimal transaction identifier.
func ParseTxID(s string) (TxID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return TxID(v), nil
}

func (t TxID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Amount is a non-negative money value with four fractional digits.
// The zero value is a valid zero amount.
type Amount struct {
	value decimal.Decimal
}

// NewAmount rounds d to AmountPlaces. Negative values and values with more
// than AmountIntegerDigits integer digits are rejected.
func NewAmount(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("amount %s is negative", d.String())
	}
	rounded := d.Round(AmountPlaces)
	if rounded.GreaterThanOrEqual(amountLimit) {
		return Amount{}, fmt.Errorf("amount %s has more than %d integer digits", rounded.String(), AmountIntegerDigits)
	}
	return Amount{value: rounded}, nil
}

// ParseAmount parses a plain decimal string such as "1.5", "3" or ".25".
// Signs, exponents and other notations are rejected.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return Amount{}, fmt.Errorf("amount %q has no digits", s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return Amount{}, fmt.Errorf("amount %q is not a plain decimal", s)
	}
	if len(strings.TrimLeft(whole, "0")) > AmountIntegerDigits {
		return Amount{}, fmt.Errorf("amount %q has more than %d integer digits", s, AmountIntegerDigits)
	}
	if len(frac) > maxFractionDigits {
		return Amount{}, fmt.Errorf("amount %q has more than %d fractional digits", s, maxFractionDigits)
	}

	if whole == "" {
		whole = "0"
	}
	if frac != "" {
		whole += "." + frac
	}
	d, err := decimal.NewFromString(whole)
	if err != nil {
		return Amount{}, err
	}
	return NewAmount(d)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseAmount is like ParseAmount but panics on error. Intended for
// constants and tests.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) IsZero() bool { return a.value.IsZero() }

// Add returns a+b.
func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }

func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }

// String renders the amount with exactly four fractional digits.
func (a Amount) String() string { return a.value.StringFixed(AmountPlaces) }
