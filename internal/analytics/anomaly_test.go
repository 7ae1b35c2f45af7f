package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

func TestDetect_MagnitudeOutlier(t *testing.T) {
	txs := spaced(transaction.CategoryShopping, "-50", "-55", "-48", "-52", "-51", "-500")

	found := Detect(txs)

	require.Len(t, found, 1)
	assert.Equal(t, txs[5].ID, found[0].TransactionID)
	assert.Equal(t, RiskMedium, found[0].RiskLevel)
	assert.Equal(t, MethodRuleBased, found[0].DetectionMethod)
	assert.Equal(t, "Unusually large amount ($500.00)", found[0].Reason)
}

func TestDetect_SmallListUsesHalfMeanSpread(t *testing.T) {
	txs := spaced(transaction.CategoryFood, "-20", "-22", "-21", "-200")

	found := Detect(txs)

	require.Len(t, found, 1)
	assert.Equal(t, txs[3].ID, found[0].TransactionID)
}

func TestDetect_NearConstantPeersAreNotOutliers(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
	}{
		{name: "subscription price bump", amounts: []string{"-9.99", "-9.99", "-9.99", "-9.99", "-9.99", "-10.99"}},
		{name: "one cent above identical peers", amounts: []string{"-100", "-100", "-100", "-100", "-100", "-101"}},
		{name: "small jitter", amounts: []string{"-100", "-101", "-99", "-100", "-100", "-104"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Detect(spaced(transaction.CategoryFood, tt.amounts...)))
		})
	}
}

func TestDetect_TooFew(t *testing.T) {
	assert.Empty(t, Detect(nil))
	assert.Empty(t, Detect(spaced(transaction.CategoryGambling, "-1000")))
}

func TestDetect_RapidSuccession(t *testing.T) {
	txs := []transaction.Transaction{
		tx("-20", transaction.CategoryFood, baseTime),
		tx("-22", transaction.CategoryFood, baseTime.Add(5*time.Minute)),
		tx("-21", transaction.CategoryFood, baseTime.Add(2*time.Hour)),
		tx("-19", transaction.CategoryFood, baseTime.Add(3*time.Hour)),
	}

	found := Detect(txs)

	require.Len(t, found, 1)
	assert.Equal(t, txs[1].ID, found[0].TransactionID)
	assert.Equal(t, RiskLow, found[0].RiskLevel)
	assert.Equal(t, "Transaction made very quickly after previous one (5.0 minutes)", found[0].Reason)
}

func TestDetect_RapidSuccessionBoundaries(t *testing.T) {
	txs := []transaction.Transaction{
		tx("-20", transaction.CategoryFood, baseTime),
		tx("-20", transaction.CategoryFood, baseTime), // same instant is not flagged
		tx("-20", transaction.CategoryFood, baseTime.Add(10*time.Minute)),
		tx("-20", transaction.CategoryFood, baseTime.Add(20*time.Minute)),
	}

	assert.Empty(t, Detect(txs))
}

func TestDetect_UnsortedInput(t *testing.T) {
	txs := []transaction.Transaction{
		tx("-21", transaction.CategoryFood, baseTime.Add(2*time.Hour)),
		tx("-22", transaction.CategoryFood, baseTime.Add(5*time.Minute)),
		tx("-19", transaction.CategoryFood, baseTime.Add(3*time.Hour)),
		tx("-20", transaction.CategoryFood, baseTime),
	}

	found := Detect(txs)

	require.Len(t, found, 1)
	assert.Equal(t, txs[1].ID, found[0].TransactionID)
}

func TestDetect_RestrictedCategories(t *testing.T) {
	tests := []struct {
		name     string
		category transaction.Category
		flagged  bool
	}{
		{name: "gambling", category: transaction.CategoryGambling, flagged: true},
		{name: "adult", category: transaction.CategoryAdult, flagged: true},
		{name: "cryptocurrency", category: transaction.CategoryCryptocurrency, flagged: true},
		{name: "wire transfer", category: transaction.CategoryWireTransfer, flagged: true},
		{name: "mixed case", category: "Gambling", flagged: true},
		{name: "food", category: transaction.CategoryFood, flagged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []transaction.Transaction{
				tx("-30", transaction.CategoryFood, baseTime),
				tx("-30", tt.category, baseTime.Add(time.Hour)),
			}

			found := Detect(txs)

			if !tt.flagged {
				assert.Empty(t, found)
				return
			}
			require.Len(t, found, 1)
			assert.Equal(t, txs[1].ID, found[0].TransactionID)
			assert.Equal(t, RiskMedium, found[0].RiskLevel)
			assert.Contains(t, found[0].Reason, "Transaction in restricted category")
		})
	}
}

func TestDetect_OneFlagPerTransaction(t *testing.T) {
	txs := spaced(transaction.CategoryShopping, "-50", "-55", "-48", "-52", "-51")
	big := tx("-500", transaction.CategoryGambling, baseTime.AddDate(0, 0, 10))
	txs = append(txs, big)

	found := Detect(txs)

	require.Len(t, found, 1)
	assert.Equal(t, big.ID, found[0].TransactionID)
	assert.Equal(t, "Unusually large amount ($500.00)", found[0].Reason)
}

func TestDetect_Idempotent(t *testing.T) {
	txs := spaced(transaction.CategoryShopping, "-50", "-55", "-48", "-52", "-51", "-500")
	txs = append(txs, tx("-5", transaction.CategoryWireTransfer, baseTime.AddDate(0, 0, 3).Add(time.Minute)))

	first := Detect(txs)
	second := Detect(txs)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestMergeDetections(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	rules := []SuspiciousTransaction{
		{TransactionID: a, Reason: "rule", RiskLevel: RiskMedium, DetectionMethod: MethodRuleBased},
	}
	llm := []SuspiciousTransaction{
		{TransactionID: a, Reason: "llm duplicate", RiskLevel: RiskHigh, DetectionMethod: MethodLLM},
		{TransactionID: b, Reason: "odd merchant", RiskLevel: RiskHigh, DetectionMethod: MethodLLM},
		{TransactionID: b, Reason: "again", RiskLevel: RiskLow, DetectionMethod: MethodLLM},
		{TransactionID: c, Reason: "late night", RiskLevel: RiskLow, DetectionMethod: MethodLLM},
	}

	merged := MergeDetections(rules, llm)

	require.Len(t, merged, 3)
	assert.Equal(t, "rule", merged[0].Reason)
	assert.Equal(t, "odd merchant", merged[1].Reason)
	assert.Equal(t, c, merged[2].TransactionID)
}

func TestParseRiskLevel(t *testing.T) {
	assert.Equal(t, RiskHigh, ParseRiskLevel(" HIGH "))
	assert.Equal(t, RiskLow, ParseRiskLevel("low"))
	assert.Equal(t, RiskMedium, ParseRiskLevel("medium"))
	assert.Equal(t, RiskMedium, ParseRiskLevel("severe"))
}

func TestDetectCategoryAnomalies(t *testing.T) {
	txs := spaced(transaction.CategoryFood, "-20", "-20", "-20", "-20", "-20", "-200")
	txs = append(txs, tx("3000", transaction.CategoryIncome, baseTime))

	anomalies := DetectCategoryAnomalies(txs, DefaultZScoreThreshold)

	require.Len(t, anomalies, 1)
	a := anomalies[0]
	assert.Equal(t, txs[5].ID, a.TransactionID)
	assert.Equal(t, transaction.CategoryFood, a.Category)
	assert.True(t, a.IsHigh)
	assert.InDelta(t, 2.04, a.ZScore, 0.01)
	assert.InDelta(t, 50.0, a.CategoryMean, 1e-9)
	assert.InDelta(t, 300.0, a.PercentDeviation, 1e-9)
}

func TestDetectCategoryAnomalies_NotEnoughData(t *testing.T) {
	tests := []struct {
		name string
		txs  []transaction.Transaction
	}{
		{name: "short list", txs: spaced(transaction.CategoryFood, "-20", "-20", "-20", "-200")},
		{name: "no spread", txs: spaced(transaction.CategoryFood, "-20", "-20", "-20", "-20", "-20")},
		{
			name: "small categories",
			txs: append(
				spaced(transaction.CategoryFood, "-20", "-500"),
				spaced(transaction.CategoryHousing, "-900", "-10", "-1000")...,
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, DetectCategoryAnomalies(tt.txs, 0))
		})
	}
}
