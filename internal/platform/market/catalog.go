package market

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed data/catalog.json
var catalogJSON []byte

// Security is one listed instrument of the catalog
type Security struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent float64         `json:"change_percent"`
}

type catalogFile struct {
	Securities     []Security      `json:"securities"`
	Trends         Trends          `json:"trends"`
	LowRiskOptions []LowRiskOption `json:"low_risk_options"`
}

// Catalog serves reference prices, the market outlook and the low-risk product list
// for everything the live crypto provider does not cover.
type Catalog struct {
	bySymbol map[string]Security
	trends   Trends
	lowRisk  []LowRiskOption
}

// LoadCatalog parses the embedded catalog
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogJSON)
}

// ParseCatalog parses a catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse market catalog: %w", err)
	}

	c := &Catalog{
		bySymbol: make(map[string]Security, len(f.Securities)),
		trends:   f.Trends,
		lowRisk:  f.LowRiskOptions,
	}
	for _, s := range f.Securities {
		s.Symbol = NormalizeSymbol(s.Symbol)
		c.bySymbol[s.Symbol] = s
	}
	return c, nil
}

// Name implements QuoteProvider
func (c *Catalog) Name() Source {
	return SourceCatalog
}

// Quote implements QuoteProvider
func (c *Catalog) Quote(_ context.Context, symbol string) (decimal.Decimal, error) {
	s, ok := c.bySymbol[NormalizeSymbol(symbol)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return s.Price, nil
}

// Security looks up a catalog entry
func (c *Catalog) Security(symbol string) (Security, bool) {
	s, ok := c.bySymbol[NormalizeSymbol(symbol)]
	return s, ok
}

// Trends returns the outlook with a sentiment score derived from the average daily move of
// the listed securities: every 2% of average move is one full point, clamped to [-1, 1].
func (c *Catalog) Trends(now time.Time) Trends {
	t := c.trends
	t.EconomicIndicators = copyMap(c.trends.EconomicIndicators)
	t.SectorPerformance = copyMap(c.trends.SectorPerformance)

	if len(c.bySymbol) > 0 {
		var sum float64
		for _, s := range c.bySymbol {
			sum += s.ChangePercent
		}
		score := math.Max(-1, math.Min(1, sum/float64(len(c.bySymbol))/2))
		t.SentimentScore = math.Round(score*100) / 100
	}
	t.Sentiment = SentimentFor(t.SentimentScore)
	t.LastUpdated = now.UTC()
	return t
}

// LowRiskOptions returns the conservative product list
func (c *Catalog) LowRiskOptions() []LowRiskOption {
	out := make([]LowRiskOption, len(c.lowRisk))
	copy(out, c.lowRisk)
	return out
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
