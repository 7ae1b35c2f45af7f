package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount with two decimals and a dollar sign: -12.5 → "-$12.50"
func FormatUSD(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// RoundTo rounds f half away from zero to the given number of decimal places.
func RoundTo(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return decimal.NewFromFloat(f).Round(int32(places)).InexactFloat64()
}
