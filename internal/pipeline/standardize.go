package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"MarketScope/internal/model"
)

// CoercionError reports a cell that could not be parsed as numeric during
// type standardization.
type CoercionError struct {
	Ticker string
	Column model.Field
	Row    int
	Value  any
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("standardize %s: column %s row %d: cannot coerce %v to float64",
		e.Ticker, e.Column, e.Row, e.Value)
}

// Standardize coerces every cell of every ticker's series to float64,
// producing the typed collection the rest of the pipeline operates on.
// Numeric cells pass through, nil and recognized missing tokens become NaN,
// numeric strings are parsed. Anything else fails; a bad cell is surfaced,
// never silently dropped.
func Standardize(raw map[string]*model.RawSeries) (map[string]*model.TickerSeries, error) {
	out := make(map[string]*model.TickerSeries, len(raw))
	for ticker, rs := range raw {
		ts := &model.TickerSeries{
			Ticker: ticker,
			Dates:  append([]time.Time(nil), rs.Dates...),
		}
		for _, f := range model.Fields {
			col := make([]float64, rs.Len())
			for i, cell := range rs.Cols[f] {
				v, ok := coerce(cell)
				if !ok {
					return nil, &CoercionError{Ticker: ticker, Column: f, Row: i, Value: cell}
				}
				col[i] = v
			}
			ts.SetCol(f, col)
		}
		out[ticker] = ts
	}
	return out, nil
}

// missingTokens are text cells treated as absent values rather than errors.
var missingTokens = map[string]struct{}{
	"": {}, "null": {}, "nan": {}, "na": {}, "-": {},
}

func coerce(cell any) (float64, bool) {
	switch v := cell.(type) {
	case nil:
		return math.NaN(), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if _, ok := missingTokens[strings.ToLower(strings.TrimSpace(v))]; ok {
			return math.NaN(), true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
