// Package analytics turns transaction and portfolio lists into budget summaries, benchmark
// comparisons, fraud flags, diversification scores and budget projections.
//
// Every function here is pure: no I/O, no shared state, deterministic output ordering.
// No-data inputs produce zero-valued results, never errors.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

// CategoryAmount is the outflow total of one category
type CategoryAmount struct {
	Category   transaction.Category `json:"category"`
	Amount     decimal.Decimal      `json:"amount"`
	Percentage float64              `json:"percentage"`
}

// AggregationResult summarizes inflows and outflows of a transaction list
type AggregationResult struct {
	TotalIncome       decimal.Decimal  `json:"total_income"`
	TotalExpenses     decimal.Decimal  `json:"total_expenses"`
	NetSavings        decimal.Decimal  `json:"net_savings"`
	SavingsRate       float64          `json:"savings_rate"`
	TransactionCount  int              `json:"transaction_count"`
	CategoryBreakdown []CategoryAmount `json:"category_breakdown"`
}

// Category looks up one category of the breakdown
func (r AggregationResult) Category(c transaction.Category) (CategoryAmount, bool) {
	for _, ca := range r.CategoryBreakdown {
		if ca.Category == c {
			return ca, true
		}
	}
	return CategoryAmount{}, false
}

// Aggregate sums inflows into TotalIncome and outflow magnitudes into TotalExpenses and the
// per-category breakdown. The sign of the amount decides the side; the category only groups.
// Zero amounts are ignored. The breakdown is sorted by category.
func Aggregate(txs []transaction.Transaction) AggregationResult {
	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := make(map[transaction.Category]decimal.Decimal)

	for i := range txs {
		amount := txs[i].Amount
		switch {
		case amount.IsPositive():
			income = income.Add(amount)
		case amount.IsNegative():
			magnitude := amount.Abs()
			expenses = expenses.Add(magnitude)
			c := categoryKey(txs[i].Category)
			byCategory[c] = byCategory[c].Add(magnitude)
		}
	}

	net := income.Sub(expenses)
	result := AggregationResult{
		TotalIncome:       income,
		TotalExpenses:     expenses,
		NetSavings:        net,
		SavingsRate:       money.Percent(net, income),
		TransactionCount:  len(txs),
		CategoryBreakdown: make([]CategoryAmount, 0, len(byCategory)),
	}

	for _, c := range sortedCategories(byCategory) {
		amount := byCategory[c]
		result.CategoryBreakdown = append(result.CategoryBreakdown, CategoryAmount{
			Category:   c,
			Amount:     amount,
			Percentage: money.Percent(amount, expenses),
		})
	}

	return result
}

func categoryKey(c transaction.Category) transaction.Category {
	n := c.Normalize()
	if n == "" {
		return transaction.CategoryOther
	}
	return n
}

func sortedCategories[V any](m map[transaction.Category]V) []transaction.Category {
	keys := make([]transaction.Category, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
