package render

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// money formats an amount as $X.XX: literal dollar prefix, exactly two
// decimals, half-away-from-zero rounding, no grouping separators.
func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// number formats quantities and tax percentages without trailing zeros,
// so 2 prints as "2" and 8.25 as "8.25".
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
