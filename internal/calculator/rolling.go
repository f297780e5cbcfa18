package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Rolling computes the trailing simple moving mean and sample standard
// deviation over the given window. Row i is defined once a full window of
// values ends at i (i >= window-1); earlier rows, and rows whose window
// contains a missing value, are NaN.
func Rolling(closes []float64, window int) (means, stds []float64, err error) {
	if window < 2 {
		return nil, nil, errors.New("rolling window must be at least 2")
	}

	means = make([]float64, len(closes))
	stds = make([]float64, len(closes))
	for i := range closes {
		if i < window-1 {
			means[i] = math.NaN()
			stds[i] = math.NaN()
			continue
		}
		w := closes[i-window+1 : i+1]
		if hasNaN(w) {
			means[i] = math.NaN()
			stds[i] = math.NaN()
			continue
		}
		means[i] = stat.Mean(w, nil)
		stds[i] = stat.StdDev(w, nil)
	}
	return means, stds, nil
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
