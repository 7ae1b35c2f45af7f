package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

func TestProject_ReductionNeeded(t *testing.T) {
	txs := []transaction.Transaction{
		tx("4000", transaction.CategoryIncome, baseTime),
		tx("-2000", transaction.CategoryHousing, baseTime),
		tx("-1500", transaction.CategoryFood, baseTime),
	}

	p := Project(Aggregate(txs), DefaultSavingsTargetPercent)

	assert.True(t, p.ReductionNeeded)
	assert.Equal(t, "800", p.TargetSavings.String())
	assert.Equal(t, "3200", p.AvailableBudget.String())
	assert.InDelta(t, 0.9142857, p.ReductionFactor, 1e-6)

	housing, ok := p.Limit(transaction.CategoryHousing)
	require.True(t, ok)
	assert.Equal(t, "1828.57", housing.String())
	food, ok := p.Limit(transaction.CategoryFood)
	require.True(t, ok)
	assert.Equal(t, "1371.43", food.String())
}

func TestProject_NoReduction(t *testing.T) {
	txs := []transaction.Transaction{
		tx("4000", transaction.CategoryIncome, baseTime),
		tx("-1000", transaction.CategoryHousing, baseTime),
		tx("-333.33", transaction.CategoryFood, baseTime),
	}

	p := Project(Aggregate(txs), 20)

	assert.False(t, p.ReductionNeeded)
	assert.Equal(t, 1.0, p.ReductionFactor)
	food, _ := p.Limit(transaction.CategoryFood)
	assert.Equal(t, "333.33", food.String())
}

func TestProject_NoIncome(t *testing.T) {
	p := Project(Aggregate(spaced(transaction.CategoryFood, "-100")), 20)

	assert.True(t, p.ReductionNeeded)
	assert.Equal(t, 0.0, p.ReductionFactor)
	food, _ := p.Limit(transaction.CategoryFood)
	assert.True(t, food.IsZero())
}

func TestProject_Empty(t *testing.T) {
	p := Project(Aggregate(nil), 20)

	assert.False(t, p.ReductionNeeded)
	assert.Empty(t, p.BudgetLimits)
}

func TestProject_LimitsNeverExceedCurrent(t *testing.T) {
	txs := []transaction.Transaction{
		tx("1000", transaction.CategoryIncome, baseTime),
		tx("-700", transaction.CategoryHousing, baseTime),
		tx("-450.55", transaction.CategoryShopping, baseTime),
		tx("-99.99", transaction.CategoryEntertainment, baseTime),
	}

	p := Project(Aggregate(txs), 35)

	for _, bl := range p.BudgetLimits {
		assert.True(t, bl.Limit.LessThanOrEqual(bl.Current), bl.Category)
		assert.False(t, bl.Limit.IsNegative(), bl.Category)
	}
}
