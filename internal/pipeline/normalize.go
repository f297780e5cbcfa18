package pipeline

import (
	"MarketScope/internal/calculator"
	"MarketScope/internal/model"
)

// Normalize min-max rescales the five price/volume columns of every ticker
// into [0, 1], each column fit independently on that ticker's own min and max.
// A constant column maps to 0 for every row rather than dividing by zero.
// Returns a new collection; inputs are not mutated.
//
// Derived columns are left on their raw scale, which is why the pipeline runs
// feature derivation before this stage.
func Normalize(series map[string]*model.TickerSeries) map[string]*model.TickerSeries {
	out := make(map[string]*model.TickerSeries, len(series))
	for ticker, s := range series {
		c := s.Clone()
		for _, f := range model.Fields {
			c.SetCol(f, calculator.MinMaxScale(c.Col(f)))
		}
		out[ticker] = c
	}
	return out
}
