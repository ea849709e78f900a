package counter

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Format renders n the way the dashboard shows it: "2.5M+", "2K+" or "999+".
// The scaled value is rounded from its binary form with halves going up, so
// 1_150_000 (1.1499... as a float) shows as "1.1M+" and 2500 as "3K+".
func Format(n int64) string {
	switch {
	case n >= 1_000_000:
		return fixed(float64(n)/1e6, 1) + "M+"
	case n >= 1_000:
		return fixed(float64(n)/1e3, 0) + "K+"
	default:
		return strconv.FormatInt(n, 10) + "+"
	}
}

// fixed formats v with the given decimals from its exact binary expansion.
func fixed(v float64, places int32) string {
	exact := decimal.RequireFromString(strconv.FormatFloat(v, 'f', 64, 64))
	return exact.Round(places).StringFixed(places)
}
