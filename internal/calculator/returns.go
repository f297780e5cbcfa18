package calculator

import "math"

// DailyReturns computes the percent change in consecutive closes:
// (close[i] - close[i-1]) / close[i-1] * 100. The first row is NaN, as is any
// row whose own or previous close is missing or zero.
func DailyReturns(closes []float64) []float64 {
	returns := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			returns[i] = math.NaN()
			continue
		}
		prev, cur := closes[i-1], closes[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			returns[i] = math.NaN()
			continue
		}
		returns[i] = (cur - prev) / prev * 100
	}
	return returns
}

// UnusualReturns flags rows whose daily return moves more than threshold
// percent in either direction. NaN returns are never flagged.
func UnusualReturns(returns []float64, threshold float64) []bool {
	flags := make([]bool, len(returns))
	for i, r := range returns {
		if math.IsNaN(r) {
			continue
		}
		flags[i] = r > threshold || r < -threshold
	}
	return flags
}
