package types

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// signedFixed always shows the sign, matching the dashboard's "+12.30" /
// "-4.15" display.
func signedFixed(d decimal.Decimal) string {
	s := d.StringFixed(2)
	if !d.IsNegative() {
		return "+" + s
	}
	return s
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
