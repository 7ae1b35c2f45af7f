package investment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

const systemPrompt = `You are an investment advisor. You will be given market data, the user's risk tolerance and
time horizon, and possibly an existing portfolio. Recommend suitable investments with allocation percentages.
Prioritize capital preservation unless the user accepts more risk, explain your reasoning in simple language,
be transparent about risks and expected returns, and diversify across asset classes.`

const allocationSchema = `{"allocations": [{"name": "string", "percent": 0.0, "expected_return": "string", "risk": "string"}], "reasoning": ["string"]}`

func recommendPrompt(req Request, holdings []holding.Holding, trends market.Trends, options []market.LowRiskOption) string {
	var b strings.Builder

	b.WriteString("## Current Market Trends\n")
	fmt.Fprintf(&b, "Market Sentiment: %s (%.2f)\n", trends.Sentiment, trends.SentimentScore)
	fmt.Fprintf(&b, "Market Summary: %s\n", trends.Summary)
	fmt.Fprintf(&b, "Interest Rate Trend: %s\n", trends.InterestRateTrend)
	fmt.Fprintf(&b, "Inflation Outlook: %s\n", trends.InflationOutlook)
	for _, sector := range sortedKeys(trends.SectorPerformance) {
		fmt.Fprintf(&b, "Sector %s: %s\n", sector, trends.SectorPerformance[sector])
	}

	b.WriteString("\n## Low-Risk Investment Options\nInvestment | Type | Expected Return | Risk Level\n--- | --- | --- | ---\n")
	for _, o := range options {
		fmt.Fprintf(&b, "%s | %s | %s | %s\n", o.Name, o.Type, o.ExpectedReturn, o.RiskLevel)
	}

	b.WriteString("\n## User profile\n")
	fmt.Fprintf(&b, "- Amount available to invest: %s\n", money.FormatUSD(req.Amount))
	fmt.Fprintf(&b, "- Risk tolerance: %s\n", req.RiskTolerance)
	fmt.Fprintf(&b, "- Investment time horizon: %s\n", req.TimeHorizon)

	b.WriteString("\n## Current portfolio\n")
	if len(holdings) == 0 {
		b.WriteString("No existing portfolio.\n")
	} else {
		b.WriteString("Asset | Type | Quantity | Purchase Price | Current Value\n--- | --- | --- | --- | ---\n")
		for i := range holdings {
			h := &holdings[i]
			fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
				h.AssetName, h.AssetType, h.Quantity.String(), money.FormatUSD(h.PurchasePrice), money.FormatUSD(h.EffectiveValue()))
		}
	}

	b.WriteString("\nRecommend suitable investment options for this user with allocation percentages and explain your reasoning.")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
