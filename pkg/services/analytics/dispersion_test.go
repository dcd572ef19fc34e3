package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDispersion(t *testing.T) {
	t.Run("two equal-weight entries", func(t *testing.T) {
		d, ok := AnalyzeDispersion([]float64{10, 30}, 2)
		require.True(t, ok)
		assert.InDelta(t, 20.0, d.Mean, 1e-9)
		assert.InDelta(t, 10.0, d.StdDev, 1e-9)
		assert.InDelta(t, 50.0, d.CoefficientOfVariation, 1e-9)
		assert.Equal(t, 2, d.ActiveCount)
	})

	t.Run("zero buckets lower the mean but not the variance divisor", func(t *testing.T) {
		d, ok := AnalyzeDispersion([]float64{10, 30, 0, 0}, 4)
		require.True(t, ok)
		assert.InDelta(t, 10.0, d.Mean, 1e-9)
		assert.InDelta(t, math.Sqrt(200), d.StdDev, 1e-9)
		assert.InDelta(t, math.Sqrt(200)*10, d.CoefficientOfVariation, 1e-9)
	})

	t.Run("uniform values have no spread", func(t *testing.T) {
		d, ok := AnalyzeDispersion([]float64{5, 5, 5, 5}, 4)
		require.True(t, ok)
		assert.InDelta(t, 0.0, d.CoefficientOfVariation, 1e-9)
	})

	t.Run("single active entry", func(t *testing.T) {
		_, ok := AnalyzeDispersion([]float64{0, 0, 42, 0}, 4)
		assert.False(t, ok)
	})

	t.Run("no entries", func(t *testing.T) {
		_, ok := AnalyzeDispersion(nil, 0)
		assert.False(t, ok)
	})
}

func TestMonthlyVariability(t *testing.T) {
	assert.Equal(t, "HIGH variability", MonthlyVariability(60))
	assert.Equal(t, "MODERATE variability", MonthlyVariability(30))
	assert.Equal(t, "LOW variability", MonthlyVariability(10))
	assert.Equal(t, "MODERATE variability", MonthlyVariability(50))
	assert.Equal(t, "LOW variability", MonthlyVariability(25))
}

func TestSeasonalBalance(t *testing.T) {
	assert.Equal(t, "Excellent balance", SeasonalBalance(10))
	assert.Equal(t, "Good balance", SeasonalBalance(15))
	assert.Equal(t, "Moderate imbalance", SeasonalBalance(30))
	assert.Equal(t, "High imbalance", SeasonalBalance(50))
}
