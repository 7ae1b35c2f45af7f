package analytics

import (
	"strings"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
)

// Sector is a coarse industry classification
type Sector string

const (
	SectorTechnology      Sector = "technology"
	SectorHealthcare      Sector = "healthcare"
	SectorFinancials      Sector = "financials"
	SectorEnergy          Sector = "energy"
	SectorConsumerStaples Sector = "consumer_staples"
	SectorRealEstate      Sector = "real_estate"
	SectorUtilities       Sector = "utilities"
	SectorUnknown         Sector = "unknown"
)

var tickerSectors = map[string]Sector{
	"AAPL": SectorTechnology, "MSFT": SectorTechnology, "GOOGL": SectorTechnology, "GOOG": SectorTechnology,
	"NVDA": SectorTechnology, "META": SectorTechnology, "XLK": SectorTechnology, "QQQ": SectorTechnology,
	"JNJ": SectorHealthcare, "PFE": SectorHealthcare, "UNH": SectorHealthcare, "XLV": SectorHealthcare,
	"JPM": SectorFinancials, "BAC": SectorFinancials, "V": SectorFinancials, "MA": SectorFinancials, "XLF": SectorFinancials,
	"XOM": SectorEnergy, "CVX": SectorEnergy, "XLE": SectorEnergy,
	"WMT": SectorConsumerStaples, "PG": SectorConsumerStaples, "KO": SectorConsumerStaples, "XLP": SectorConsumerStaples,
	"VNQ": SectorRealEstate, "O": SectorRealEstate,
	"NEE": SectorUtilities, "XLU": SectorUtilities,
}

// sectorKeywords is checked in order; the first match wins
var sectorKeywords = []struct {
	sector   Sector
	keywords []string
}{
	{SectorTechnology, []string{"tech", "apple", "microsoft", "google", "alphabet", "nvidia", "software", "semiconductor"}},
	{SectorHealthcare, []string{"health", "pharma", "biotech", "medical"}},
	{SectorFinancials, []string{"bank", "visa", "mastercard", "financial", "insurance"}},
	{SectorEnergy, []string{"oil", "energy", "exxon", "chevron", "solar"}},
	{SectorConsumerStaples, []string{"consumer", "retail", "walmart", "procter"}},
	{SectorRealEstate, []string{"reit", "real estate", "realty", "property"}},
	{SectorUtilities, []string{"utility", "utilities", "electric"}},
}

// ClassifySector maps a holding onto a sector by its symbol, its name read as a ticker, or
// keywords in its name. Real estate holdings without a better match land in real_estate.
func ClassifySector(h holding.Holding) Sector {
	if h.Symbol != nil {
		if s, ok := tickerSectors[strings.ToUpper(strings.TrimSpace(*h.Symbol))]; ok {
			return s
		}
	}
	if s, ok := tickerSectors[strings.ToUpper(strings.TrimSpace(h.AssetName))]; ok {
		return s
	}

	name := strings.ToLower(h.AssetName)
	for _, entry := range sectorKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.sector
			}
		}
	}

	if h.AssetType == holding.AssetTypeRealEstate {
		return SectorRealEstate
	}
	return SectorUnknown
}
