package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

func TestBenchmark_HousingAboveSavingsBelow(t *testing.T) {
	txs := []transaction.Transaction{
		tx("4000", transaction.CategoryIncome, baseTime),
		tx("-1600", transaction.CategoryHousing, baseTime),
		tx("-400", transaction.CategorySavings, baseTime),
	}

	result := Benchmark(Aggregate(txs))
	require.True(t, result.Sufficient)

	housing, ok := result.Category(transaction.CategoryHousing)
	require.True(t, ok)
	assert.Equal(t, 40.0, housing.PercentageOfIncome)
	assert.Equal(t, StatusAbove, housing.Status)
	assert.Equal(t, 25.0, housing.BenchmarkMin)
	assert.Equal(t, 35.0, housing.BenchmarkMax)
	assert.Equal(t, "Your spending in Housing is above typical ranges. This may limit flexibility in other areas. Consider if downsizing is an option.", housing.Advice)

	savings, ok := result.Category(transaction.CategorySavings)
	require.True(t, ok)
	assert.Equal(t, 10.0, savings.PercentageOfIncome)
	assert.Equal(t, StatusBelow, savings.Status)
	assert.Contains(t, savings.Advice, "Consider allocating more to build financial security.")
}

func TestBenchmark_InsufficientIncome(t *testing.T) {
	result := Benchmark(Aggregate(spaced(transaction.CategoryFood, "-25", "-40")))

	assert.False(t, result.Sufficient)
	assert.Equal(t, InsufficientIncomeMessage, result.Message)
	assert.Empty(t, result.Categories)
	assert.Equal(t, "65", result.Discretionary.Total.String())
	assert.Equal(t, 0.0, result.Discretionary.PercentageOfIncome)
}

func TestBenchmark_FixedAndDiscretionarySplit(t *testing.T) {
	txs := []transaction.Transaction{
		tx("5000", transaction.CategoryIncome, baseTime),
		tx("-1500", transaction.CategoryHousing, baseTime),
		tx("-250", transaction.CategoryUtilities, baseTime),
		tx("-300", transaction.CategoryDebt, baseTime),
		tx("-600", transaction.CategoryFood, baseTime),
		tx("-400", transaction.CategoryEntertainment, baseTime),
	}

	result := Benchmark(Aggregate(txs))

	assert.Equal(t, "2050", result.Fixed.Total.String())
	assert.InDelta(t, 41.0, result.Fixed.PercentageOfIncome, 1e-9)
	assert.Len(t, result.Fixed.Breakdown, 3)
	assert.Equal(t, "1000", result.Discretionary.Total.String())
	assert.InDelta(t, 20.0, result.Discretionary.PercentageOfIncome, 1e-9)

	assert.Equal(t, "2500", result.Rule.Needs.String())
	assert.Equal(t, "1500", result.Rule.Wants.String())
	assert.Equal(t, "1000", result.Rule.Savings.String())
	assert.Equal(t, "50/30/20", result.Rule.Rule)
}

func TestBenchmark_UnknownCategory(t *testing.T) {
	txs := []transaction.Transaction{
		tx("1000", transaction.CategoryIncome, baseTime),
		tx("-50", transaction.CategoryWireTransfer, baseTime),
	}

	result := Benchmark(Aggregate(txs))

	cb, ok := result.Category(transaction.CategoryWireTransfer)
	require.True(t, ok)
	assert.Equal(t, "Wire transfer", cb.Name)
	assert.Equal(t, 0.0, cb.BenchmarkMin)
	assert.Equal(t, 0.0, cb.BenchmarkMax)
	assert.Equal(t, StatusAbove, cb.Status)
	assert.Equal(t, "Your spending in Wire transfer is above typical ranges.", cb.Advice)
}

func TestBenchmark_RoundsBeforeComparing(t *testing.T) {
	// 14.96% rounds to 15.0, inside food's 10-15 range
	txs := []transaction.Transaction{
		tx("10000", transaction.CategoryIncome, baseTime),
		tx("-1496", transaction.CategoryFood, baseTime),
	}

	cb, ok := Benchmark(Aggregate(txs)).Category(transaction.CategoryFood)
	require.True(t, ok)
	assert.Equal(t, 15.0, cb.PercentageOfIncome)
	assert.Equal(t, StatusNormal, cb.Status)
	assert.Equal(t, "Your spending in Food is within typical ranges.", cb.Advice)
}

func TestBenchmark_InvestmentRange(t *testing.T) {
	r, ok := BenchmarkFor(transaction.CategoryInvestment)
	require.True(t, ok)
	assert.Equal(t, Range{Name: "Investments", Min: 10, Max: 20}, r)
}

func TestIsFixed(t *testing.T) {
	assert.True(t, IsFixed(transaction.CategoryHousing))
	assert.True(t, IsFixed(transaction.CategoryDebt))
	assert.False(t, IsFixed(transaction.CategorySavings))
	assert.False(t, IsFixed(transaction.CategoryFood))
}
