package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/money"
)

// RiskLevel grades a suspicious transaction
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ParseRiskLevel accepts any casing; unknown values fall back to Medium
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow
	case "high":
		return RiskHigh
	default:
		return RiskMedium
	}
}

// DetectionMethod records which layer flagged a transaction
type DetectionMethod string

const (
	MethodRuleBased DetectionMethod = "rule-based"
	MethodLLM       DetectionMethod = "llm"
)

const (
	// MinScreeningSize is the smallest list worth screening
	MinScreeningSize = 2
	// MinStatisticalSize is the smallest list for the outlier and timing passes
	MinStatisticalSize = 4
	// SampleStdDevSize is the list size from which the sample stddev is trusted
	SampleStdDevSize = 6
	// OutlierSigmas is how many standard deviations above the peer mean an amount may sit
	OutlierSigmas = 3.0
	// RapidSuccessionWindow flags transactions closer together than this
	RapidSuccessionWindow = 10 * time.Minute
)

var restrictedCategories = map[string]bool{
	"gambling":       true,
	"adult":          true,
	"cryptocurrency": true,
	"wire_transfer":  true,
}

// IsRestrictedCategory reports whether transactions in c are always screened
func IsRestrictedCategory(c transaction.Category) bool {
	return restrictedCategories[strings.ToLower(strings.TrimSpace(string(c)))]
}

// SuspiciousTransaction is one fraud flag
type SuspiciousTransaction struct {
	TransactionID   uuid.UUID       `json:"transaction_id"`
	Reason          string          `json:"reason"`
	RiskLevel       RiskLevel       `json:"risk_level"`
	DetectionMethod DetectionMethod `json:"detection_method"`
}

// Detect screens transactions with three rule passes and returns the union of their flags,
// one per transaction, the first pass to flag a transaction wins:
//
//  1. magnitude outliers: an amount above mean + 3σ of its peers (the other transactions)
//  2. rapid succession: less than ten minutes after the previous transaction
//  3. restricted categories: gambling, adult, cryptocurrency, wire_transfer
//
// Passes 1 and 2 need at least four transactions; fewer than two returns an empty list.
func Detect(txs []transaction.Transaction) []SuspiciousTransaction {
	found := []SuspiciousTransaction{}
	if len(txs) < MinScreeningSize {
		return found
	}

	sorted := sortByTimestamp(txs)
	seen := make(map[uuid.UUID]bool, len(sorted))
	add := func(s SuspiciousTransaction) {
		if seen[s.TransactionID] {
			return
		}
		seen[s.TransactionID] = true
		found = append(found, s)
	}

	if len(sorted) >= MinStatisticalSize {
		for _, s := range magnitudeOutliers(sorted) {
			add(s)
		}
		for _, s := range rapidSuccession(sorted) {
			add(s)
		}
	}
	for _, s := range restrictedCategoryFlags(sorted) {
		add(s)
	}

	return found
}

// MergeDetections keeps every rule-based flag and appends LLM flags only for transactions
// not already flagged. Duplicate LLM flags for one transaction collapse to the first.
func MergeDetections(ruleBased, llm []SuspiciousTransaction) []SuspiciousTransaction {
	merged := make([]SuspiciousTransaction, 0, len(ruleBased)+len(llm))
	seen := make(map[uuid.UUID]bool, len(ruleBased)+len(llm))

	for _, s := range ruleBased {
		merged = append(merged, s)
		seen[s.TransactionID] = true
	}
	for _, s := range llm {
		if seen[s.TransactionID] {
			continue
		}
		seen[s.TransactionID] = true
		merged = append(merged, s)
	}

	return merged
}

func sortByTimestamp(txs []transaction.Transaction) []transaction.Transaction {
	sorted := make([]transaction.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted
}

// magnitudeOutliers compares each amount with the baseline of the remaining transactions.
// The spread is half the peer mean; from SampleStdDevSize transactions on, the peer sample
// stddev replaces it when larger, so near-constant peers cannot shrink the threshold to noise.
func magnitudeOutliers(sorted []transaction.Transaction) []SuspiciousTransaction {
	n := len(sorted)
	mags := make([]float64, n)
	total := 0.0
	for i := range sorted {
		mags[i] = sorted[i].Amount.Abs().InexactFloat64()
		total += mags[i]
	}

	var flagged []SuspiciousTransaction
	peers := float64(n - 1)
	for i := range sorted {
		mean := (total - mags[i]) / peers

		sigma := 0.5 * mean
		if n >= SampleStdDevSize {
			var ss float64
			for j := range mags {
				if j == i {
					continue
				}
				d := mags[j] - mean
				ss += d * d
			}
			sigma = math.Max(sigma, math.Sqrt(ss/(peers-1)))
		}

		threshold := mean + OutlierSigmas*sigma
		if mags[i] > threshold {
			flagged = append(flagged, SuspiciousTransaction{
				TransactionID:   sorted[i].ID,
				Reason:          fmt.Sprintf("Unusually large amount (%s)", money.FormatUSD(sorted[i].Amount.Abs())),
				RiskLevel:       RiskMedium,
				DetectionMethod: MethodRuleBased,
			})
		}
	}

	return flagged
}

func rapidSuccession(sorted []transaction.Transaction) []SuspiciousTransaction {
	var flagged []SuspiciousTransaction
	for i := 1; i < len(sorted); i++ {
		delta := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp)
		if delta <= 0 || delta >= RapidSuccessionWindow {
			continue
		}
		flagged = append(flagged, SuspiciousTransaction{
			TransactionID:   sorted[i].ID,
			Reason:          fmt.Sprintf("Transaction made very quickly after previous one (%.1f minutes)", delta.Minutes()),
			RiskLevel:       RiskLow,
			DetectionMethod: MethodRuleBased,
		})
	}
	return flagged
}

func restrictedCategoryFlags(sorted []transaction.Transaction) []SuspiciousTransaction {
	var flagged []SuspiciousTransaction
	for i := range sorted {
		if !IsRestrictedCategory(sorted[i].Category) {
			continue
		}
		flagged = append(flagged, SuspiciousTransaction{
			TransactionID:   sorted[i].ID,
			Reason:          fmt.Sprintf("Transaction in restricted category (%s)", strings.ToLower(string(sorted[i].Category))),
			RiskLevel:       RiskMedium,
			DetectionMethod: MethodRuleBased,
		})
	}
	return flagged
}

// CategoryAnomaly is an outflow far from its category's usual amount
type CategoryAnomaly struct {
	TransactionID    uuid.UUID            `json:"transaction_id"`
	Category         transaction.Category `json:"category"`
	Amount           decimal.Decimal      `json:"amount"`
	Timestamp        time.Time            `json:"timestamp"`
	ZScore           float64              `json:"z_score"`
	CategoryMean     float64              `json:"category_mean"`
	IsHigh           bool                 `json:"is_high"`
	PercentDeviation float64              `json:"percent_deviation"`
}

const (
	// DefaultZScoreThreshold flags outflows more than two standard deviations from their category mean
	DefaultZScoreThreshold = 2.0

	minCategoryAnomalyList = 5
	minCategoryRows        = 3
	minCategoryStdDev      = 1e-4
)

// DetectCategoryAnomalies computes per-category z-scores of outflow magnitudes and returns the
// outflows whose |z| exceeds threshold. Needs at least five transactions overall and three
// outflows in a category; categories with no spread are skipped.
func DetectCategoryAnomalies(txs []transaction.Transaction, threshold float64) []CategoryAnomaly {
	anomalies := []CategoryAnomaly{}
	if len(txs) < minCategoryAnomalyList {
		return anomalies
	}
	if threshold <= 0 {
		threshold = DefaultZScoreThreshold
	}

	byCategory := make(map[transaction.Category][]transaction.Transaction)
	for _, tx := range sortByTimestamp(txs) {
		if !tx.IsOutflow() {
			continue
		}
		c := categoryKey(tx.Category)
		byCategory[c] = append(byCategory[c], tx)
	}

	for _, c := range sortedCategories(byCategory) {
		rows := byCategory[c]
		if len(rows) < minCategoryRows {
			continue
		}

		values := make([]float64, len(rows))
		for i := range rows {
			values[i] = rows[i].Amount.Abs().InexactFloat64()
		}
		mean, std := meanStdDev(values)
		if std < minCategoryStdDev {
			continue
		}

		for i, v := range values {
			z := (v - mean) / std
			if math.Abs(z) <= threshold {
				continue
			}
			deviation := 0.0
			if mean > 0 {
				deviation = math.Abs(v-mean) / mean * 100
			}
			anomalies = append(anomalies, CategoryAnomaly{
				TransactionID:    rows[i].ID,
				Category:         c,
				Amount:           rows[i].Amount.Abs(),
				Timestamp:        rows[i].Timestamp,
				ZScore:           z,
				CategoryMean:     mean,
				IsHigh:           z > 0,
				PercentDeviation: deviation,
			})
		}
	}

	return anomalies
}

// meanStdDev returns the mean and the sample standard deviation (n-1)
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if len(values) < 2 {
		return mean, 0
	}

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(values)-1))
}
