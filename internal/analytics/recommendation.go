package analytics

import (
	"fmt"
	"strings"
)

// Recommendation is a templated fund suggestion that closes a portfolio gap
type Recommendation struct {
	Gap             Gap    `json:"gap"`
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	RiskLevel       string `json:"risk_level"`
	GrowthPotential string `json:"growth_potential"`
	Description     string `json:"description"`
	Reason          string `json:"recommendation_reason"`
}

var gapTemplates = map[Gap]Recommendation{
	GapStarterPortfolio: {
		Symbol:          "VTSMX",
		Name:            "Three-Fund Core Portfolio",
		Type:            "Portfolio Strategy",
		RiskLevel:       "Low",
		GrowthPotential: "Varies by allocation",
		Description:     "A simple portfolio of Total US Stock Market, International Stock, and Bond index funds",
		Reason:          "Build a starter portfolio on a core diversified foundation",
	},
	GapStockExposure: {
		Symbol:          "VTI",
		Name:            "Total Stock Market Index Fund",
		Type:            "Stock Fund",
		RiskLevel:       "Medium",
		GrowthPotential: "7.0%",
		Description:     "Broad exposure to the entire US equity market",
		Reason:          "Your portfolio has little equity exposure for long-term growth",
	},
	GapFixedIncome: {
		Symbol:          "BND",
		Name:            "Total Bond Market ETF",
		Type:            "Bond Fund",
		RiskLevel:       "Low",
		GrowthPotential: "3.1%",
		Description:     "Broad exposure to US investment-grade bonds",
		Reason:          "Your portfolio lacks fixed income exposure for stability",
	},
	GapRealEstate: {
		Symbol:          "VNQ",
		Name:            "REIT Index Fund",
		Type:            "Real Estate",
		RiskLevel:       "Medium",
		GrowthPotential: "5.5%",
		Description:     "Exposure to real estate investment trusts across various property sectors",
		Reason:          "Adding real estate can improve diversification and provide income",
	},
}

// sectorFunds is the order in which under-represented sectors are suggested
var sectorFunds = []struct {
	sector Sector
	rec    Recommendation
}{
	{SectorEnergy, Recommendation{Symbol: "XLE", Name: "Energy Sector ETF", RiskLevel: "Medium-High", GrowthPotential: "6.5%", Description: "Focused exposure to energy sector companies"}},
	{SectorHealthcare, Recommendation{Symbol: "XLV", Name: "Health Care Sector ETF", RiskLevel: "Medium", GrowthPotential: "6.0%", Description: "Focused exposure to healthcare and pharmaceutical companies"}},
	{SectorUtilities, Recommendation{Symbol: "XLU", Name: "Utilities Sector ETF", RiskLevel: "Low-Medium", GrowthPotential: "4.5%", Description: "Focused exposure to regulated utility companies"}},
	{SectorConsumerStaples, Recommendation{Symbol: "XLP", Name: "Consumer Staples Sector ETF", RiskLevel: "Low-Medium", GrowthPotential: "4.8%", Description: "Focused exposure to household and consumer staples companies"}},
	{SectorFinancials, Recommendation{Symbol: "XLF", Name: "Financial Sector ETF", RiskLevel: "Medium", GrowthPotential: "6.2%", Description: "Focused exposure to banks, insurers and payment networks"}},
	{SectorTechnology, Recommendation{Symbol: "XLK", Name: "Technology Sector ETF", RiskLevel: "Medium-High", GrowthPotential: "8.0%", Description: "Focused exposure to technology companies"}},
}

func recommendationFor(g Gap, present map[Sector]bool) Recommendation {
	if g == GapSectorDiversification {
		for _, sf := range sectorFunds {
			if present[sf.sector] {
				continue
			}
			rec := sf.rec
			rec.Gap = g
			rec.Type = "Sector Fund"
			rec.Reason = fmt.Sprintf("Your portfolio would benefit from %s sector exposure", strings.ReplaceAll(string(sf.sector), "_", " "))
			return rec
		}
	}

	rec := gapTemplates[g]
	rec.Gap = g
	return rec
}
