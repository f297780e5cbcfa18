package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ZScores standardizes each close against the mean and population standard
// deviation of the whole series. A zero-variance series scores 0 everywhere.
// Missing closes stay NaN and are excluded from the mean/std.
func ZScores(closes []float64) []float64 {
	valid := make([]float64, 0, len(closes))
	for _, v := range closes {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}

	scores := make([]float64, len(closes))
	if len(valid) == 0 {
		for i := range scores {
			scores[i] = math.NaN()
		}
		return scores
	}

	mean := stat.Mean(valid, nil)
	std := stat.PopStdDev(valid, nil)
	for i, v := range closes {
		switch {
		case math.IsNaN(v):
			scores[i] = math.NaN()
		case std == 0:
			scores[i] = 0
		default:
			scores[i] = (v - mean) / std
		}
	}
	return scores
}

// Outliers flags rows whose absolute z-score exceeds the threshold.
func Outliers(zscores []float64, threshold float64) []bool {
	flags := make([]bool, len(zscores))
	for i, z := range zscores {
		if math.IsNaN(z) {
			continue
		}
		flags[i] = math.Abs(z) > threshold
	}
	return flags
}

// MinMaxScale linearly rescales values into [0, 1] by the observed min and
// max, ignoring NaNs. A constant column maps to 0 for every row.
func MinMaxScale(values []float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	scaled := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			scaled[i] = math.NaN()
		case hi == lo:
			scaled[i] = 0
		default:
			scaled[i] = (v - lo) / (hi - lo)
		}
	}
	return scaled
}
