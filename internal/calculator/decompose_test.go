package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linear trend plus a zero-sum period-4 pattern; the centered moving average
// over exactly one period cancels the pattern, so the components are exact in
// the interior.
func seasonalSeries(n int) []float64 {
	pattern := []float64{1, -1, 2, -2}
	x := make([]float64, n)
	for i := range x {
		x[i] = 10 + 0.5*float64(i) + pattern[i%4]
	}
	return x
}

func TestDecompose(t *testing.T) {
	x := seasonalSeries(24)
	dec, err := Decompose(x, 4)
	require.NoError(t, err)
	require.Len(t, dec.Trend, 24)
	require.Len(t, dec.Seasonal, 24)
	require.Len(t, dec.Residual, 24)

	// edges of the centered window are undefined
	assert.True(t, math.IsNaN(dec.Trend[0]))
	assert.True(t, math.IsNaN(dec.Trend[1]))
	assert.True(t, math.IsNaN(dec.Trend[23]))

	for i := 2; i < 22; i++ {
		assert.InDelta(t, 10+0.5*float64(i), dec.Trend[i], 1e-9, "trend at %d", i)
		assert.InDelta(t, 0, dec.Residual[i], 1e-9, "residual at %d", i)
	}

	pattern := []float64{1, -1, 2, -2}
	for i := 0; i < 24; i++ {
		assert.InDelta(t, pattern[i%4], dec.Seasonal[i], 1e-9, "seasonal at %d", i)
	}
}

func TestDecompose_SeasonalSumsToZero(t *testing.T) {
	dec, err := Decompose(seasonalSeries(40), 4)
	require.NoError(t, err)

	sum := 0.0
	for i := 0; i < 4; i++ {
		sum += dec.Seasonal[i]
	}
	assert.InDelta(t, 0, sum, 1e-9)
}

func TestDecompose_OddPeriod(t *testing.T) {
	pattern := []float64{3, 0, -3}
	x := make([]float64, 21)
	for i := range x {
		x[i] = 5 + float64(i) + pattern[i%3]
	}

	dec, err := Decompose(x, 3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(dec.Trend[0]))
	assert.True(t, math.IsNaN(dec.Trend[20]))
	for i := 1; i < 20; i++ {
		assert.InDelta(t, 5+float64(i), dec.Trend[i], 1e-9)
	}
}

func TestDecompose_InsufficientHistory(t *testing.T) {
	_, err := Decompose(seasonalSeries(7), 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}

func TestDecompose_InvalidPeriod(t *testing.T) {
	_, err := Decompose(seasonalSeries(24), 1)
	assert.Error(t, err)
}
