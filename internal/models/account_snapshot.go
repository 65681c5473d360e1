package models

import "github.com/shopspring/decimal"

// AccountSnapshot is the read-only state of one client's account.
// Available may be negative after a dispute of already spent funds.
type AccountSnapshot struct {
	Client    ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}
