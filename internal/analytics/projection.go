package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

// DefaultSavingsTargetPercent is the savings share assumed when none is given
const DefaultSavingsTargetPercent = 20.0

// BudgetLimit is the projected spending cap of one category
type BudgetLimit struct {
	Category transaction.Category `json:"category"`
	Current  decimal.Decimal      `json:"current"`
	Limit    decimal.Decimal      `json:"limit"`
}

// BudgetProjection scales current spending down so that the savings target is met
type BudgetProjection struct {
	SavingsTargetPercent float64         `json:"savings_target_percent"`
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	TargetSavings        decimal.Decimal `json:"target_savings"`
	AvailableBudget      decimal.Decimal `json:"available_budget"`
	ReductionNeeded      bool            `json:"reduction_needed"`
	ReductionFactor      float64         `json:"reduction_factor"`
	BudgetLimits         []BudgetLimit   `json:"budget_limits"`
}

// Project caps every category at its current amount times one reduction factor:
// 1 when expenses fit in income minus the savings target, otherwise available / expenses.
// The cutback is uniform across categories. The factor never goes below 0.
func Project(agg AggregationResult, savingsTargetPercent float64) BudgetProjection {
	target := money.OfPercent(agg.TotalIncome, savingsTargetPercent)
	available := agg.TotalIncome.Sub(target)

	factor := decimal.NewFromInt(1)
	reduction := agg.TotalExpenses.GreaterThan(available)
	if reduction {
		factor = money.Ratio(available, agg.TotalExpenses)
		if factor.IsNegative() {
			factor = decimal.Zero
		}
	}

	p := BudgetProjection{
		SavingsTargetPercent: savingsTargetPercent,
		TotalIncome:          agg.TotalIncome,
		TotalExpenses:        agg.TotalExpenses,
		TargetSavings:        target,
		AvailableBudget:      available,
		ReductionNeeded:      reduction,
		ReductionFactor:      factor.InexactFloat64(),
		BudgetLimits:         make([]BudgetLimit, 0, len(agg.CategoryBreakdown)),
	}

	for _, ca := range agg.CategoryBreakdown {
		limit := ca.Amount
		if reduction {
			limit = ca.Amount.Mul(factor).Round(2)
		}
		p.BudgetLimits = append(p.BudgetLimits, BudgetLimit{
			Category: ca.Category,
			Current:  ca.Amount,
			Limit:    limit,
		})
	}

	return p
}

// Limit looks up the projected cap of one category
func (p BudgetProjection) Limit(c transaction.Category) (decimal.Decimal, bool) {
	for _, bl := range p.BudgetLimits {
		if bl.Category == c {
			return bl.Limit, true
		}
	}
	return decimal.Zero, false
}
