package analytics

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

// Status compares a category's share of income with its typical range
type Status string

const (
	StatusBelow  Status = "below"
	StatusNormal Status = "normal"
	StatusAbove  Status = "above"
)

// InsufficientIncomeMessage explains why no benchmarks were produced
const InsufficientIncomeMessage = "income is required for category analysis"

// Range is a typical spending range as percent of income
type Range struct {
	Name string
	Min  float64
	Max  float64
}

var benchmarkTable = map[transaction.Category]Range{
	transaction.CategoryHousing:       {Name: "Housing", Min: 25, Max: 35},
	transaction.CategoryUtilities:     {Name: "Utilities", Min: 5, Max: 10},
	transaction.CategoryFood:          {Name: "Food", Min: 10, Max: 15},
	transaction.CategoryTransport:     {Name: "Transportation", Min: 5, Max: 15},
	transaction.CategoryEntertainment: {Name: "Entertainment", Min: 5, Max: 10},
	transaction.CategoryHealth:        {Name: "Healthcare", Min: 5, Max: 10},
	transaction.CategoryEducation:     {Name: "Education", Min: 2, Max: 5},
	transaction.CategoryShopping:      {Name: "Shopping", Min: 5, Max: 10},
	transaction.CategoryPersonal:      {Name: "Personal Care", Min: 5, Max: 10},
	transaction.CategoryDebt:          {Name: "Debt Payments", Min: 0, Max: 15},
	transaction.CategorySavings:       {Name: "Savings", Min: 15, Max: 20},
	transaction.CategoryInvestment:    {Name: "Investments", Min: 10, Max: 20},
	transaction.CategoryOther:         {Name: "Other", Min: 0, Max: 5},
}

var fixedCategories = map[transaction.Category]bool{
	transaction.CategoryHousing:   true,
	transaction.CategoryUtilities: true,
	transaction.CategoryDebt:      true,
}

// IsFixed reports whether a category is a fixed expense (needs)
func IsFixed(c transaction.Category) bool {
	return fixedCategories[c]
}

// BenchmarkFor returns the typical range of a category. Unknown categories get {0, 0}
// and a display name derived from the category.
func BenchmarkFor(c transaction.Category) (Range, bool) {
	if r, ok := benchmarkTable[c]; ok {
		return r, true
	}
	return Range{Name: displayName(c)}, false
}

// CategoryBenchmark is one category compared against its typical range
type CategoryBenchmark struct {
	Category           transaction.Category `json:"category"`
	Name               string               `json:"name"`
	Amount             decimal.Decimal      `json:"amount"`
	PercentageOfIncome float64              `json:"percentage_of_income"`
	BenchmarkMin       float64              `json:"benchmark_min"`
	BenchmarkMax       float64              `json:"benchmark_max"`
	Status             Status               `json:"status"`
	Advice             string               `json:"advice"`
}

// ExpenseGroup totals the fixed or the discretionary categories
type ExpenseGroup struct {
	Total              decimal.Decimal  `json:"total"`
	PercentageOfIncome float64          `json:"percentage_of_income"`
	Breakdown          []CategoryAmount `json:"breakdown"`
}

// RuleTargets are the 50/30/20 targets derived from income
type RuleTargets struct {
	Needs   decimal.Decimal `json:"needs"`
	Wants   decimal.Decimal `json:"wants"`
	Savings decimal.Decimal `json:"savings"`
	Rule    string          `json:"rule"`
}

// BenchmarkResult is the category analysis of an aggregation
type BenchmarkResult struct {
	Sufficient    bool                `json:"sufficient"`
	Message       string              `json:"message,omitempty"`
	Categories    []CategoryBenchmark `json:"categories"`
	Fixed         ExpenseGroup        `json:"fixed"`
	Discretionary ExpenseGroup        `json:"discretionary"`
	Rule          RuleTargets         `json:"rule"`
}

// Category looks up one category benchmark
func (r BenchmarkResult) Category(c transaction.Category) (CategoryBenchmark, bool) {
	for _, cb := range r.Categories {
		if cb.Category == c {
			return cb, true
		}
	}
	return CategoryBenchmark{}, false
}

// Benchmark compares each category's share of income with its typical range and splits
// spending into fixed and discretionary groups. When income is not positive the result is
// marked insufficient and carries no category comparisons.
// Outflows tagged "income" are reversals and take no part in the comparison.
func Benchmark(agg AggregationResult) BenchmarkResult {
	income := agg.TotalIncome
	result := BenchmarkResult{
		Categories:    []CategoryBenchmark{},
		Fixed:         ExpenseGroup{Total: decimal.Zero, Breakdown: []CategoryAmount{}},
		Discretionary: ExpenseGroup{Total: decimal.Zero, Breakdown: []CategoryAmount{}},
		Rule:          RuleTargetsFor(income),
	}

	for _, ca := range agg.CategoryBreakdown {
		if ca.Category == transaction.CategoryIncome {
			continue
		}
		group := &result.Discretionary
		if IsFixed(ca.Category) {
			group = &result.Fixed
		}
		group.Total = group.Total.Add(ca.Amount)
		group.Breakdown = append(group.Breakdown, ca)
	}
	result.Fixed.PercentageOfIncome = money.Percent(result.Fixed.Total, income)
	result.Discretionary.PercentageOfIncome = money.Percent(result.Discretionary.Total, income)

	if !income.IsPositive() {
		result.Message = InsufficientIncomeMessage
		return result
	}
	result.Sufficient = true

	for _, ca := range agg.CategoryBreakdown {
		if ca.Category == transaction.CategoryIncome {
			continue
		}
		r, _ := BenchmarkFor(ca.Category)
		pct := money.RoundTo(money.Percent(ca.Amount, income), 1)
		status := statusFor(pct, r)

		result.Categories = append(result.Categories, CategoryBenchmark{
			Category:           ca.Category,
			Name:               r.Name,
			Amount:             ca.Amount,
			PercentageOfIncome: pct,
			BenchmarkMin:       r.Min,
			BenchmarkMax:       r.Max,
			Status:             status,
			Advice:             adviceFor(ca.Category, r.Name, status),
		})
	}

	return result
}

// RuleTargetsFor splits income by the 50/30/20 rule
func RuleTargetsFor(income decimal.Decimal) RuleTargets {
	return RuleTargets{
		Needs:   money.OfPercent(income, 50),
		Wants:   money.OfPercent(income, 30),
		Savings: money.OfPercent(income, 20),
		Rule:    "50/30/20",
	}
}

func statusFor(pct float64, r Range) Status {
	switch {
	case pct < r.Min:
		return StatusBelow
	case pct > r.Max:
		return StatusAbove
	default:
		return StatusNormal
	}
}

func adviceFor(c transaction.Category, name string, status Status) string {
	switch status {
	case StatusBelow:
		advice := fmt.Sprintf("Your spending in %s is below typical ranges.", name)
		switch c {
		case transaction.CategoryFood:
			advice += " This is good if you're being efficient with grocery shopping, but ensure you're meeting nutritional needs."
		case transaction.CategorySavings, transaction.CategoryInvestment:
			advice += " Consider allocating more to build financial security."
		case transaction.CategoryTransport, transaction.CategoryEntertainment:
			advice += " Consider allocating more to this category if needed."
		}
		return advice
	case StatusAbove:
		advice := fmt.Sprintf("Your spending in %s is above typical ranges.", name)
		switch c {
		case transaction.CategoryHousing:
			advice += " This may limit flexibility in other areas. Consider if downsizing is an option."
		case transaction.CategoryEntertainment, transaction.CategoryShopping:
			advice += " Look for opportunities to reduce discretionary spending here."
		}
		return advice
	default:
		return fmt.Sprintf("Your spending in %s is within typical ranges.", name)
	}
}

// displayName turns "wire_transfer" into "Wire transfer"
func displayName(c transaction.Category) string {
	s := strings.ReplaceAll(string(c), "_", " ")
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
