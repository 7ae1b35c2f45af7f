package analytics

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

// Gap is a missing portfolio exposure
type Gap string

const (
	GapStarterPortfolio      Gap = "starter portfolio"
	GapStockExposure         Gap = "stock exposure"
	GapFixedIncome           Gap = "fixed income"
	GapRealEstate            Gap = "real estate"
	GapSectorDiversification Gap = "sector diversification"
)

const (
	pointsPerType      = 15
	maxTypePoints      = 40
	pointsPerHolding   = 10
	maxHoldingPoints   = 30
	pointsPerSector    = 10
	maxSectorPoints    = 30
	heavyConcentration = 30
	mildConcentration  = 15

	minStockAllocation = 20.0
	minDistinctSectors = 3
)

var (
	heavyShare = decimal.RequireFromString("0.5")
	mildShare  = decimal.RequireFromString("0.3")
)

// Allocation is the share of total value held in one bucket
type Allocation struct {
	Key        string          `json:"key"`
	Value      decimal.Decimal `json:"value"`
	Percentage float64         `json:"percentage"`
}

// HoldingAnalysis is one position's place in the portfolio
type HoldingAnalysis struct {
	HoldingID             uuid.UUID           `json:"holding_id"`
	AssetName             string              `json:"asset_name"`
	AssetType             holding.AssetType   `json:"asset_type"`
	Sector                Sector              `json:"sector"`
	Value                 decimal.Decimal     `json:"value"`
	PercentageOfPortfolio float64             `json:"percentage_of_portfolio"`
	Performance           holding.Performance `json:"performance"`
}

// DiversificationResult is the composition analysis of a portfolio
type DiversificationResult struct {
	TotalValue           decimal.Decimal   `json:"total_value"`
	DiversificationScore int               `json:"diversification_score"`
	AssetAllocation      []Allocation      `json:"asset_allocation"`
	SectorExposure       []Allocation      `json:"sector_exposure"`
	Gaps                 []Gap             `json:"gaps"`
	Recommendations      []Recommendation  `json:"recommendations"`
	Holdings             []HoldingAnalysis `json:"holdings"`
}

// HasGap reports whether the analysis found gap g
func (r DiversificationResult) HasGap(g Gap) bool {
	for _, x := range r.Gaps {
		if x == g {
			return true
		}
	}
	return false
}

// Allocation looks up the asset-type share of t
func (r DiversificationResult) Allocation(t holding.AssetType) float64 {
	for _, a := range r.AssetAllocation {
		if a.Key == string(t) {
			return a.Percentage
		}
	}
	return 0
}

// Analyze computes asset-type and sector allocation, a 0-100 diversification score, the
// missing exposures, and one templated recommendation per gap.
//
// Score: +15 per distinct asset type (max 40), +10 per holding (max 30), +10 per known sector
// (max 30), minus 30 when one holding exceeds half of the total value or 15 when it exceeds
// 30%, clamped to [0, 100].
func Analyze(holdings []holding.Holding) DiversificationResult {
	result := DiversificationResult{
		TotalValue:      decimal.Zero,
		AssetAllocation: []Allocation{},
		SectorExposure:  []Allocation{},
		Gaps:            []Gap{},
		Recommendations: []Recommendation{},
		Holdings:        []HoldingAnalysis{},
	}

	if len(holdings) == 0 {
		result.Gaps = append(result.Gaps, GapStarterPortfolio)
		result.Recommendations = append(result.Recommendations, recommendationFor(GapStarterPortfolio, nil))
		return result
	}

	byType := make(map[string]decimal.Decimal)
	bySector := make(map[string]decimal.Decimal)
	values := make([]decimal.Decimal, len(holdings))
	sectors := make([]Sector, len(holdings))

	for i := range holdings {
		v := holdings[i].EffectiveValue()
		values[i] = v
		sectors[i] = ClassifySector(holdings[i])
		result.TotalValue = result.TotalValue.Add(v)
		byType[string(holdings[i].AssetType)] = byType[string(holdings[i].AssetType)].Add(v)
		bySector[string(sectors[i])] = bySector[string(sectors[i])].Add(v)
	}

	result.AssetAllocation = allocations(byType, result.TotalValue)
	result.SectorExposure = allocations(bySector, result.TotalValue)

	knownSectors := make(map[Sector]bool)
	for _, s := range sectors {
		if s != SectorUnknown {
			knownSectors[s] = true
		}
	}

	maxValue := decimal.Zero
	for i := range holdings {
		if values[i].GreaterThan(maxValue) {
			maxValue = values[i]
		}
		result.Holdings = append(result.Holdings, HoldingAnalysis{
			HoldingID:             holdings[i].ID,
			AssetName:             holdings[i].AssetName,
			AssetType:             holdings[i].AssetType,
			Sector:                sectors[i],
			Value:                 values[i],
			PercentageOfPortfolio: money.Percent(values[i], result.TotalValue),
			Performance:           holdings[i].Performance(),
		})
	}
	sort.SliceStable(result.Holdings, func(i, j int) bool {
		a, b := result.Holdings[i], result.Holdings[j]
		if !a.Value.Equal(b.Value) {
			return a.Value.GreaterThan(b.Value)
		}
		return a.AssetName < b.AssetName
	})

	score := min(len(byType)*pointsPerType, maxTypePoints) +
		min(len(holdings)*pointsPerHolding, maxHoldingPoints) +
		min(len(knownSectors)*pointsPerSector, maxSectorPoints)

	if result.TotalValue.IsPositive() {
		share := maxValue.Div(result.TotalValue)
		switch {
		case share.GreaterThan(heavyShare):
			score -= heavyConcentration
		case share.GreaterThan(mildShare):
			score -= mildConcentration
		}
	}
	result.DiversificationScore = max(0, min(100, score))

	stockPct := result.Allocation(holding.AssetTypeStock)
	if _, ok := byType[string(holding.AssetTypeStock)]; !ok || stockPct < minStockAllocation {
		result.Gaps = append(result.Gaps, GapStockExposure)
	}
	if _, ok := byType[string(holding.AssetTypeBond)]; !ok {
		result.Gaps = append(result.Gaps, GapFixedIncome)
	}
	if _, ok := byType[string(holding.AssetTypeRealEstate)]; !ok {
		result.Gaps = append(result.Gaps, GapRealEstate)
	}
	if len(knownSectors) < minDistinctSectors {
		result.Gaps = append(result.Gaps, GapSectorDiversification)
	}

	for _, g := range result.Gaps {
		result.Recommendations = append(result.Recommendations, recommendationFor(g, knownSectors))
	}

	return result
}

func allocations(buckets map[string]decimal.Decimal, total decimal.Decimal) []Allocation {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Allocation, 0, len(keys))
	for _, k := range keys {
		out = append(out, Allocation{
			Key:        k,
			Value:      buckets[k],
			Percentage: money.Percent(buckets[k], total),
		})
	}
	return out
}
