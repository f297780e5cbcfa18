package pipeline

import (
	"time"

	"MarketScope/internal/model"
)

// Separate splits the combined history into one untyped series per ticker
// with columns {Date, Close, Open, High, Low, Volume}, row-aligned by date and
// date-ascending. Every date on the combined axis yields a row for every
// ticker; provider gaps stay as nil cells to be surfaced by inspection and
// resolved by cleaning.
func Separate(history *model.RawHistory, tickers []string) map[string]*model.RawSeries {
	out := make(map[string]*model.RawSeries, len(tickers))
	for _, t := range tickers {
		s := &model.RawSeries{
			Ticker: t,
			Dates:  append([]time.Time(nil), history.Dates...),
			Cols:   make(map[model.Field][]any, len(model.Fields)),
		}
		for _, f := range model.Fields {
			s.Cols[f] = append([]any(nil), history.Cells[f][t]...)
		}
		out[t] = s
	}
	return out
}
