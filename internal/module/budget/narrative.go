package budget

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

// Narrative is the model-written part of a budget plan. CategoryLimits are advisory.
type Narrative struct {
	Summary        string                     `json:"summary"`
	Tips           []string                   `json:"tips"`
	CategoryLimits map[string]decimal.Decimal `json:"category_limits"`
}

// Validate checks the narrative is usable
func (n *Narrative) Validate() error {
	if strings.TrimSpace(n.Summary) == "" {
		return errors.New("summary is empty")
	}
	if n.Tips == nil {
		n.Tips = []string{}
	}
	for c, limit := range n.CategoryLimits {
		if limit.IsNegative() {
			return fmt.Errorf("negative limit for %q", c)
		}
	}
	return nil
}

const systemPrompt = `You are a budget planner. You analyze spending patterns and provide personalized budget recommendations.
Be specific with numbers and percentages, use simple language, and keep suggestions realistic and actionable.`

const narrativeSchema = `{"summary": "string", "tips": ["string"], "category_limits": {"<category>": 0.0}}`

func planPrompt(txs []transaction.Transaction, agg analytics.AggregationResult, target float64) string {
	var b strings.Builder

	b.WriteString("Here are the user's most recent transactions:\n\n")
	b.WriteString("Date | Amount | Category | Description\n--- | --- | --- | ---\n")
	recent := make([]transaction.Transaction, len(txs))
	copy(recent, txs)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Timestamp.After(recent[j].Timestamp) })
	if len(recent) > promptWindow {
		recent = recent[:promptWindow]
	}
	for _, t := range recent {
		desc := "(No description)"
		if t.Description != nil && *t.Description != "" {
			desc = *t.Description
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s\n", t.Timestamp.Format("2006-01-02"), money.FormatUSD(t.Amount), t.Category, desc)
	}

	b.WriteString("\n## Income and Savings\n")
	fmt.Fprintf(&b, "Total Income: %s\n", money.FormatUSD(agg.TotalIncome))
	fmt.Fprintf(&b, "Total Expenses: %s\n", money.FormatUSD(agg.TotalExpenses))
	fmt.Fprintf(&b, "Net Savings: %s\n", money.FormatUSD(agg.NetSavings))
	fmt.Fprintf(&b, "Savings Rate: %.1f%%\n\n", agg.SavingsRate)

	b.WriteString("## Spending by Category\nCategory | Amount | % of Expenses\n--- | --- | ---\n")
	for _, ca := range agg.CategoryBreakdown {
		fmt.Fprintf(&b, "%s | %s | %.1f%%\n", ca.Category, money.FormatUSD(ca.Amount), ca.Percentage)
	}

	fmt.Fprintf(&b, "\nCreate a personalized budget plan with the goal of saving at least %.0f%% of income. "+
		"Include a limit for each spending category and practical tips to help the user stick to the budget.", target)
	return b.String()
}
