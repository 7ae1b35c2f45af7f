package budget

import (
	"fmt"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

const (
	needsCeiling   = 50.0
	wantsCeiling   = 30.0
	savingsFloor   = 20.0
	noIncomeAdvice = "You don't have any income transactions recorded. Consider adding your income sources to get a complete financial picture."
)

var categoryTips = map[transaction.Category]map[analytics.Status]string{
	transaction.CategoryHousing:    {analytics.StatusAbove: "Housing is your largest expense. Consider if refinancing, roommates, or downsizing could help."},
	transaction.CategoryFood:       {analytics.StatusAbove: "Try meal planning and cooking at home more often to reduce food expenses."},
	transaction.CategoryTransport:  {analytics.StatusAbove: "Consider using public transportation, carpooling, or combining trips to save on transportation costs."},
	transaction.CategoryShopping:   {analytics.StatusAbove: "Try implementing a 24-hour rule before making non-essential purchases to reduce impulse buying."},
	transaction.CategorySavings:    {analytics.StatusBelow: automateSavingsTip},
	transaction.CategoryInvestment: {analytics.StatusBelow: automateSavingsTip},
}

const automateSavingsTip = "Set up automatic transfers to your savings or investment accounts to build your financial security."

// adviseOn turns the benchmark comparison into plain-language insights and recommendations
func adviseOn(agg analytics.AggregationResult, bench analytics.BenchmarkResult) (insights, recommendations []string) {
	insights = []string{}
	recommendations = []string{}
	recommend := func(r string) {
		for _, existing := range recommendations {
			if existing == r {
				return
			}
		}
		recommendations = append(recommendations, r)
	}

	if !agg.TotalIncome.IsPositive() {
		insights = append(insights, noIncomeAdvice)
		return insights, recommendations
	}

	needs := bench.Fixed.PercentageOfIncome
	if needs > needsCeiling {
		insights = append(insights, fmt.Sprintf("Your fixed expenses are %.1f%% of income, above the recommended 50%%.", needs))
		recommend("Consider reviewing your housing and utilities costs for potential savings.")
	} else {
		insights = append(insights, fmt.Sprintf("Your fixed expenses are %.1f%% of income, within the recommended 50%%.", needs))
	}

	wants := bench.Discretionary.PercentageOfIncome
	if wants > wantsCeiling {
		insights = append(insights, fmt.Sprintf("Your discretionary spending is %.1f%% of income, above the recommended 30%%.", wants))
		recommend("Consider cutting back on non-essential purchases in categories like entertainment and shopping.")
	} else {
		insights = append(insights, fmt.Sprintf("Your discretionary spending is %.1f%% of income, within the recommended 30%%.", wants))
	}

	if agg.SavingsRate < savingsFloor {
		insights = append(insights, fmt.Sprintf("Your savings rate is %.1f%%, below the recommended 20%%.", agg.SavingsRate))
		recommend("Try to increase your savings rate by reducing expenses or increasing income.")
	} else {
		insights = append(insights, fmt.Sprintf("Your savings rate is %.1f%%, above the recommended 20%%. Great job!", agg.SavingsRate))
	}

	for _, cb := range bench.Categories {
		if cb.Status == analytics.StatusNormal {
			continue
		}
		insights = append(insights, cb.Advice)
		if tip, ok := categoryTips[cb.Category][cb.Status]; ok {
			recommend(tip)
		}
	}

	return insights, recommendations
}
