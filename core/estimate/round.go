package estimate

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundTo rounds v to the given number of decimal places. The scaled binary
// value is rounded half up, toward +Inf, so -0.25 becomes -0.2 and 1.005
// (stored as 1.00499...) becomes 1.
// Non-finite values are returned unchanged.
func roundTo(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	units := math.Floor(v*math.Pow10(int(places)) + 0.5)
	f, _ := decimal.NewFromFloat(units).Shift(-places).Float64()
	return f
}

func roundInt(v float64) int {
	return int(roundTo(v, 0))
}
