package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyReturns(t *testing.T) {
	returns := DailyReturns([]float64{100, 110, 99})

	require.Len(t, returns, 3)
	assert.True(t, math.IsNaN(returns[0]), "first row has no previous close")
	assert.InDelta(t, 10.0, returns[1], 1e-9)
	assert.InDelta(t, -10.0, returns[2], 1e-9)
}

func TestDailyReturns_MissingAndZero(t *testing.T) {
	returns := DailyReturns([]float64{100, math.NaN(), 110, 0, 50})

	assert.True(t, math.IsNaN(returns[1]))
	assert.True(t, math.IsNaN(returns[2]), "previous close missing")
	assert.True(t, math.IsNaN(returns[4]), "previous close zero")
}

func TestDailyReturns_Empty(t *testing.T) {
	assert.Empty(t, DailyReturns(nil))
}

func TestUnusualReturns(t *testing.T) {
	returns := []float64{math.NaN(), 1.5, 2.5, -3.0, -1.9}
	flags := UnusualReturns(returns, 2)

	assert.Equal(t, []bool{false, false, true, true, false}, flags)
}

func TestUnusualReturns_BoundaryNotFlagged(t *testing.T) {
	flags := UnusualReturns([]float64{2.0, -2.0}, 2)
	assert.Equal(t, []bool{false, false}, flags, "threshold is exclusive")
}
