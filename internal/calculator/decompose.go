package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientHistory is returned when a series is too short for the
// requested decomposition period.
var ErrInsufficientHistory = errors.New("insufficient history")

// Decomposition holds the additive components of a time series, row-aligned
// with the input. Trend and residual are NaN where the centered window does
// not fit.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
}

// Decompose splits closes into additive trend, seasonal, and residual
// components. The trend is a centered moving average over one period (with
// half-weight ends for even periods); the seasonal component is the mean
// detrended value per period position, recentered to zero; the residual is
// what remains. Requires at least two full periods of data.
func Decompose(closes []float64, period int) (*Decomposition, error) {
	if period < 2 {
		return nil, errors.New("decomposition period must be at least 2")
	}
	n := len(closes)
	if n < 2*period {
		return nil, fmt.Errorf("%w: need %d observations for period %d, have %d",
			ErrInsufficientHistory, 2*period, period, n)
	}

	trend := centeredMA(closes, period)

	// Mean detrended value per period position, then recenter so the
	// seasonal component sums to zero over one period.
	sums := make([]float64, period)
	counts := make([]int, period)
	for i := range closes {
		d := closes[i] - trend[i]
		if math.IsNaN(d) {
			continue
		}
		sums[i%period] += d
		counts[i%period]++
	}
	averages := make([]float64, period)
	var total float64
	for p := range averages {
		if counts[p] > 0 {
			averages[p] = sums[p] / float64(counts[p])
		}
		total += averages[p]
	}
	level := total / float64(period)
	for p := range averages {
		averages[p] -= level
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := range closes {
		seasonal[i] = averages[i%period]
		residual[i] = closes[i] - trend[i] - seasonal[i]
	}
	return &Decomposition{Trend: trend, Seasonal: seasonal, Residual: residual}, nil
}

// centeredMA computes the two-sided moving average of one period. For even
// periods the window spans period+1 rows with half weight on both ends.
func centeredMA(x []float64, period int) []float64 {
	n := len(x)
	out := make([]float64, n)
	half := period / 2

	for i := 0; i < n; i++ {
		lo, hi := i-half, i+half
		if lo < 0 || hi >= n {
			out[i] = math.NaN()
			continue
		}

		sum := 0.0
		ok := true
		if period%2 == 0 {
			sum = 0.5*x[lo] + 0.5*x[hi]
			if math.IsNaN(x[lo]) || math.IsNaN(x[hi]) {
				ok = false
			}
			for j := lo + 1; j < hi && ok; j++ {
				if math.IsNaN(x[j]) {
					ok = false
					break
				}
				sum += x[j]
			}
		} else {
			for j := lo; j <= hi; j++ {
				if math.IsNaN(x[j]) {
					ok = false
					break
				}
				sum += x[j]
			}
		}
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}
