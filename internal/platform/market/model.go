package market

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source names the layer a quote came from
type Source string

const (
	SourceCoinGecko Source = "coingecko"
	SourceCatalog   Source = "catalog"
)

// Quote is a unit price in USD
type Quote struct {
	Symbol        string          `json:"symbol"`
	AssetType     string          `json:"asset_type"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent float64         `json:"change_percent"`
	Source        Source          `json:"source"`
	AsOf          time.Time       `json:"as_of"`
	Stale         bool            `json:"stale"`
}

// Sentiment labels a sentiment score in [-1, 1]
type Sentiment string

const (
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentPositive Sentiment = "positive"
)

// SentimentFor labels a score: below -0.3 is negative, below 0.3 neutral, else positive
func SentimentFor(score float64) Sentiment {
	switch {
	case score < -0.3:
		return SentimentNegative
	case score < 0.3:
		return SentimentNeutral
	default:
		return SentimentPositive
	}
}

// Trends is a snapshot of the broad market outlook
type Trends struct {
	Summary            string            `json:"market_summary"`
	SentimentScore     float64           `json:"current_sentiment_score"`
	Sentiment          Sentiment         `json:"sentiment"`
	InterestRateTrend  string            `json:"interest_rate_trend"`
	InflationOutlook   string            `json:"inflation_outlook"`
	EconomicIndicators map[string]string `json:"economic_indicators"`
	SectorPerformance  map[string]string `json:"sector_performance"`
	LastUpdated        time.Time         `json:"last_updated"`
}

// LowRiskOption is a conservative product offered when risk tolerance is low
type LowRiskOption struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	ExpectedReturn string `json:"expected_return"`
	RiskLevel      string `json:"risk_level"`
}

// NormalizeSymbol uppercases and trims a ticker
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsCrypto reports whether the asset type is priced by the crypto provider
func IsCrypto(assetType string) bool {
	return strings.EqualFold(strings.TrimSpace(assetType), "crypto")
}
