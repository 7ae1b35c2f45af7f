package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WholeNumber(t *testing.T) {
	result, err := Parse("1500")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(result))
}

func TestParse_WithDecimals(t *testing.T) {
	result, err := Parse("12.75")
	require.NoError(t, err)
	assert.Equal(t, "12.75", result.String())
}

func TestParse_DollarAndSeparators(t *testing.T) {
	result, err := Parse("$1,250.50")
	require.NoError(t, err)
	assert.Equal(t, "1250.5", result.String())
}

func TestParse_Negative(t *testing.T) {
	result, err := Parse("-$40.10")
	require.NoError(t, err)
	assert.Equal(t, "-40.1", result.String())
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse("  ")
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("12abc")
	assert.Error(t, err)
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 83.3333, Percent(decimal.NewFromInt(1000), decimal.NewFromInt(1200)), 0.001)
	assert.Equal(t, 0.0, Percent(decimal.NewFromInt(5), decimal.Zero))
	assert.Equal(t, 0.0, Percent(decimal.NewFromInt(5), decimal.NewFromInt(-10)))
}

func TestRatio_ZeroDenominator(t *testing.T) {
	assert.True(t, Ratio(decimal.NewFromInt(10), decimal.Zero).IsZero())
	assert.Equal(t, "0.5", Ratio(decimal.NewFromInt(1), decimal.NewFromInt(2)).String())
}

func TestOfPercent(t *testing.T) {
	assert.Equal(t, "800", OfPercent(decimal.NewFromInt(4000), 20).String())
}

func TestSum(t *testing.T) {
	total := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.Equal(t, "0.3", total.String())
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$500.00", FormatUSD(decimal.NewFromInt(500)))
	assert.Equal(t, "-$12.50", FormatUSD(decimal.RequireFromString("-12.5")))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 83.33, RoundTo(83.3333, 2))
	assert.Equal(t, 40.0, RoundTo(39.96, 1))
}
