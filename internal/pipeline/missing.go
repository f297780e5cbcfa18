package pipeline

import (
	"fmt"
	"math"
	"time"

	"MarketScope/internal/model"
)

// Strategy selects how missing numeric values are resolved.
type Strategy string

const (
	ForwardFill  Strategy = "ffill"       // propagate the last valid value forward
	BackwardFill Strategy = "bfill"       // propagate the next valid value backward
	Interpolate  Strategy = "interpolate" // linear interpolation between valid neighbors
	Drop         Strategy = "drop"        // remove rows with any missing tracked value
)

// ParseStrategy validates a configured strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case ForwardFill, BackwardFill, Interpolate, Drop:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown missing-value strategy %q", s)
}

// HandleMissing applies the strategy uniformly to every ticker and returns a
// new collection; inputs are not mutated. Requires date-sorted series, which
// separation guarantees. Fill strategies leave gaps at the open ends of a
// series unresolved; drop removes whole rows and re-indexes contiguously.
func HandleMissing(series map[string]*model.TickerSeries, strategy Strategy) map[string]*model.TickerSeries {
	out := make(map[string]*model.TickerSeries, len(series))
	for ticker, s := range series {
		c := s.Clone()
		switch strategy {
		case Drop:
			dropMissingRows(c)
		case ForwardFill:
			for _, f := range model.Fields {
				forwardFill(c.Col(f))
			}
		case BackwardFill:
			for _, f := range model.Fields {
				backwardFill(c.Col(f))
			}
		case Interpolate:
			for _, f := range model.Fields {
				interpolate(c.Col(f))
			}
		}
		out[ticker] = c
	}
	return out
}

func forwardFill(col []float64) {
	last := math.NaN()
	for i, v := range col {
		if math.IsNaN(v) {
			col[i] = last
		} else {
			last = v
		}
	}
}

func backwardFill(col []float64) {
	next := math.NaN()
	for i := len(col) - 1; i >= 0; i-- {
		if math.IsNaN(col[i]) {
			col[i] = next
		} else {
			next = col[i]
		}
	}
}

func interpolate(col []float64) {
	prev := -1
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			step := (v - col[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				col[j] = col[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
}

func dropMissingRows(s *model.TickerSeries) {
	keep := make([]int, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		missing := false
		for _, f := range model.Fields {
			if math.IsNaN(s.Col(f)[i]) {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, i)
		}
	}
	if len(keep) == s.Len() {
		return
	}

	dates := make([]time.Time, len(keep))
	for j, i := range keep {
		dates[j] = s.Dates[i]
	}
	s.Dates = dates
	for _, f := range model.Fields {
		old := s.Col(f)
		col := make([]float64, len(keep))
		for j, i := range keep {
			col[j] = old[i]
		}
		s.SetCol(f, col)
	}
}
