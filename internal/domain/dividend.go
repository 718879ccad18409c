package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dividend is a single cash payout per share on its ex-date.
type Dividend struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// TrailingDividendSum adds up payouts in the 12 months before now.
func TrailingDividendSum(divs []Dividend, now time.Time) decimal.Decimal {
	cutoff := now.AddDate(-1, 0, 0)
	sum := decimal.Zero
	for _, d := range divs {
		if d.Date.After(cutoff) && !d.Date.After(now) {
			sum = sum.Add(d.Amount)
		}
	}
	return sum
}
