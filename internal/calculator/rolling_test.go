package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolling(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	means, stds, err := Rolling(closes, 3)
	require.NoError(t, err)
	require.Len(t, means, 5)
	require.Len(t, stds, 5)

	assert.True(t, math.IsNaN(means[0]))
	assert.True(t, math.IsNaN(means[1]))
	assert.InDelta(t, 2.0, means[2], 1e-9)
	assert.InDelta(t, 3.0, means[3], 1e-9)
	assert.InDelta(t, 4.0, means[4], 1e-9)

	// sample std of three consecutive integers is 1
	assert.True(t, math.IsNaN(stds[1]))
	assert.InDelta(t, 1.0, stds[2], 1e-9)
	assert.InDelta(t, 1.0, stds[4], 1e-9)
}

func TestRolling_WindowLargerThanSeries(t *testing.T) {
	means, stds, err := Rolling([]float64{1, 2}, 5)
	require.NoError(t, err)
	for i := range means {
		assert.True(t, math.IsNaN(means[i]))
		assert.True(t, math.IsNaN(stds[i]))
	}
}

func TestRolling_MissingValuePoisonsWindow(t *testing.T) {
	closes := []float64{1, math.NaN(), 3, 4, 5}
	means, _, err := Rolling(closes, 3)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(means[2]))
	assert.True(t, math.IsNaN(means[3]))
	assert.InDelta(t, 4.0, means[4], 1e-9)
}

func TestRolling_InvalidWindow(t *testing.T) {
	_, _, err := Rolling([]float64{1, 2, 3}, 1)
	assert.Error(t, err)
}
