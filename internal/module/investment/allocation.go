package investment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
)

type answerAllocation struct {
	Name           string  `json:"name"`
	Percent        float64 `json:"percent"`
	ExpectedReturn string  `json:"expected_return"`
	Risk           string  `json:"risk"`
}

type allocationAnswer struct {
	Allocations []answerAllocation `json:"allocations"`
	Reasoning   []string           `json:"reasoning"`
}

func (a *allocationAnswer) Validate() error {
	if len(a.Allocations) == 0 {
		return errors.New("no allocations")
	}
	total := 0.0
	for _, al := range a.Allocations {
		if strings.TrimSpace(al.Name) == "" {
			return errors.New("allocation without a name")
		}
		if al.Percent < 0 {
			return fmt.Errorf("negative percent for %q", al.Name)
		}
		total += al.Percent
	}
	if total <= 0 {
		return errors.New("allocations sum to zero")
	}
	if a.Reasoning == nil {
		a.Reasoning = []string{}
	}
	return nil
}

// allocations rescales the model's percents so they sum to 100
func (a *allocationAnswer) allocations(amount decimal.Decimal) []Allocation {
	weights := make([]decimal.Decimal, len(a.Allocations))
	for i, al := range a.Allocations {
		weights[i] = decimal.NewFromFloat(al.Percent)
	}
	percents := splitPercent(weights)

	out := make([]Allocation, len(a.Allocations))
	for i, al := range a.Allocations {
		out[i] = Allocation{
			Name:           strings.TrimSpace(al.Name),
			Percent:        percents[i].InexactFloat64(),
			Amount:         amount.Mul(percents[i]).Div(hundred).Round(2),
			ExpectedReturn: orUnknown(al.ExpectedReturn),
			Risk:           orUnknown(al.Risk),
		}
	}
	return out
}

var hundred = decimal.NewFromInt(100)

// safeShare is the part of the amount kept in low-risk products per risk tolerance
var safeShare = map[Risk]decimal.Decimal{
	RiskLow:    decimal.NewFromInt(60),
	RiskMedium: decimal.NewFromInt(30),
	RiskHigh:   decimal.NewFromInt(10),
}

// fallbackAllocation splits the amount between the low-risk products and the funds that close
// the portfolio's gaps. The low-risk share depends on risk tolerance; a short horizon raises
// it by ten points.
func fallbackAllocation(req Request, analysis analytics.DiversificationResult, options []market.LowRiskOption) ([]Allocation, []string) {
	type line struct {
		name, ret, risk string
	}
	var safe, growth []line
	for _, o := range options {
		safe = append(safe, line{o.Name, o.ExpectedReturn, o.RiskLevel})
	}
	for _, r := range analysis.Recommendations {
		growth = append(growth, line{fmt.Sprintf("%s (%s)", r.Name, r.Symbol), r.GrowthPotential, r.RiskLevel})
	}

	share := safeShare[req.RiskTolerance]
	if req.TimeHorizon == HorizonShort {
		share = share.Add(decimal.NewFromInt(10))
	}
	switch {
	case len(growth) == 0:
		share = hundred
	case len(safe) == 0:
		share = decimal.Zero
	}

	var lines []line
	var weights []decimal.Decimal
	for _, l := range safe {
		lines = append(lines, l)
		weights = append(weights, share.Div(decimal.NewFromInt(int64(len(safe)))))
	}
	for _, l := range growth {
		lines = append(lines, l)
		weights = append(weights, hundred.Sub(share).Div(decimal.NewFromInt(int64(len(growth)))))
	}

	percents := splitPercent(weights)
	allocs := make([]Allocation, 0, len(lines))
	for i, l := range lines {
		if percents[i].IsZero() {
			continue
		}
		allocs = append(allocs, Allocation{
			Name:           l.name,
			Percent:        percents[i].InexactFloat64(),
			Amount:         req.Amount.Mul(percents[i]).Div(hundred).Round(2),
			ExpectedReturn: orUnknown(l.ret),
			Risk:           orUnknown(l.risk),
		})
	}

	reasoning := []string{
		fmt.Sprintf("%s%% is kept in low-risk products for a %s risk tolerance and a %s time horizon.",
			share.StringFixed(0), req.RiskTolerance, req.TimeHorizon),
	}
	for _, r := range analysis.Recommendations {
		reasoning = append(reasoning, r.Reason)
	}
	return allocs, reasoning
}

// splitPercent scales weights to percentages rounded to 2 places that sum to exactly 100.
// The rounding remainder goes to the largest weight.
func splitPercent(weights []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(weights))
	total := decimal.Sum(decimal.Zero, weights...)
	if !total.IsPositive() {
		return out
	}

	sum := decimal.Zero
	largest := 0
	for i, w := range weights {
		out[i] = w.Mul(hundred).Div(total).Round(2)
		sum = sum.Add(out[i])
		if w.GreaterThan(weights[largest]) {
			largest = i
		}
	}
	out[largest] = out[largest].Add(hundred.Sub(sum))
	return out
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "Unknown"
	}
	return s
}
