package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Parse converts a human-readable amount string into a decimal.
// Accepts an optional leading "$" and thousands separators: "$1,250.50" → 1250.5
func Parse(amountStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format: %q", amountStr)
	}
	if negative {
		d = d.Neg()
	}

	return d, nil
}

// Percent returns part / total × 100 as a float.
// Returns 0 when total is not positive so results never carry NaN or Inf.
func Percent(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	return part.Div(total).Mul(hundred).InexactFloat64()
}

// Ratio returns a / b, or zero when b is zero.
func Ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// OfPercent returns pct percent of amount: OfPercent(4000, 20) → 800
func OfPercent(amount decimal.Decimal, pct float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(pct)).Div(hundred)
}

// Sum adds a list of amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
