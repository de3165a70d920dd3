// Package statement holds the bank statement lines produced by importers.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Credit Direction = "credit"
	Debit  Direction = "debit"
)

// Line is one movement on a bank statement. Amount is always positive;
// Direction says which way the money moved.
type Line struct {
	Row         int             `json:"row"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
}

// Credits returns the lines that brought money into the account.
func Credits(lines []Line) []Line {
	var out []Line

	for _, l := range lines {
		if l.Direction == Credit {
			out = append(out, l)
		}
	}

	return out
}
