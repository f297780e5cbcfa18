package model

import (
	"math"
	"time"
)

// Field names a price/volume column of an OHLCV series.
type Field string

const (
	FieldClose  Field = "Close"
	FieldOpen   Field = "Open"
	FieldHigh   Field = "High"
	FieldLow    Field = "Low"
	FieldVolume Field = "Volume"
)

// Fields is the canonical column order used everywhere downstream:
// separation output, reports, and persisted files.
var Fields = []Field{FieldClose, FieldOpen, FieldHigh, FieldLow, FieldVolume}

// RawBar is a single candlestick bar as received from a data source. Cells are
// untyped: a JSON source yields float64 or nil, a text source yields strings.
// Typing happens in the standardization stage, never in the fetcher.
type RawBar struct {
	Time   time.Time
	Open   any
	High   any
	Low    any
	Close  any
	Volume any
}

// Cell returns the raw cell for the given field.
func (b *RawBar) Cell(f Field) any {
	switch f {
	case FieldClose:
		return b.Close
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldVolume:
		return b.Volume
	}
	return nil
}

// RawHistory is the combined acquisition result for all tickers: one date axis
// (ascending, unique) and one cell column per (field, ticker) pair. Cells are
// untyped until standardization: float64, a string cell from a text source, or
// nil where the provider had no value for that date.
type RawHistory struct {
	Dates []time.Time
	Cells map[Field]map[string][]any
}

// NewRawHistory allocates a RawHistory with nil-filled columns for every
// (field, ticker) pair over the given date axis.
func NewRawHistory(dates []time.Time, tickers []string) *RawHistory {
	h := &RawHistory{Dates: dates, Cells: make(map[Field]map[string][]any, len(Fields))}
	for _, f := range Fields {
		h.Cells[f] = make(map[string][]any, len(tickers))
		for _, t := range tickers {
			h.Cells[f][t] = make([]any, len(dates))
		}
	}
	return h
}

// RawSeries is one ticker's slice of the combined history: the five field
// columns row-aligned on a plain 0..n-1 index, still untyped.
type RawSeries struct {
	Ticker string
	Dates  []time.Time
	Cols   map[Field][]any
}

// Len returns the number of rows.
func (s *RawSeries) Len() int { return len(s.Dates) }

// TickerSeries is the cleaned, typed table for one ticker. Numeric columns use
// NaN as the missing marker. Derived columns are nil until the corresponding
// pipeline stage has run; once set they are row-aligned with Dates.
type TickerSeries struct {
	Ticker string
	Dates  []time.Time

	Close  []float64
	Open   []float64
	High   []float64
	Low    []float64
	Volume []float64

	DailyReturn []float64
	RollingMean []float64
	RollingStd  []float64
	ZScore      []float64

	Outlier       []bool
	UnusualReturn []bool
}

// Len returns the number of rows.
func (s *TickerSeries) Len() int { return len(s.Dates) }

// Col returns the column slice for the given field.
func (s *TickerSeries) Col(f Field) []float64 {
	switch f {
	case FieldClose:
		return s.Close
	case FieldOpen:
		return s.Open
	case FieldHigh:
		return s.High
	case FieldLow:
		return s.Low
	case FieldVolume:
		return s.Volume
	}
	return nil
}

// SetCol replaces the column slice for the given field.
func (s *TickerSeries) SetCol(f Field, v []float64) {
	switch f {
	case FieldClose:
		s.Close = v
	case FieldOpen:
		s.Open = v
	case FieldHigh:
		s.High = v
	case FieldLow:
		s.Low = v
	case FieldVolume:
		s.Volume = v
	}
}

// DerivedColumns lists the derived columns present on the series, in the order
// they are persisted.
func (s *TickerSeries) DerivedColumns() []string {
	var names []string
	if s.DailyReturn != nil {
		names = append(names, "Daily Return")
	}
	if s.RollingMean != nil {
		names = append(names, "Rolling Mean")
	}
	if s.RollingStd != nil {
		names = append(names, "Rolling Std")
	}
	if s.ZScore != nil {
		names = append(names, "Z-Score")
	}
	return names
}

// Derived returns the derived column slice by its persisted name.
func (s *TickerSeries) Derived(name string) []float64 {
	switch name {
	case "Daily Return":
		return s.DailyReturn
	case "Rolling Mean":
		return s.RollingMean
	case "Rolling Std":
		return s.RollingStd
	case "Z-Score":
		return s.ZScore
	}
	return nil
}

// Clone returns a deep copy. Stages that rewrite a series operate on a clone so
// the input collection is never aliased.
func (s *TickerSeries) Clone() *TickerSeries {
	c := &TickerSeries{Ticker: s.Ticker}
	c.Dates = append([]time.Time(nil), s.Dates...)
	c.Close = copyFloats(s.Close)
	c.Open = copyFloats(s.Open)
	c.High = copyFloats(s.High)
	c.Low = copyFloats(s.Low)
	c.Volume = copyFloats(s.Volume)
	c.DailyReturn = copyFloats(s.DailyReturn)
	c.RollingMean = copyFloats(s.RollingMean)
	c.RollingStd = copyFloats(s.RollingStd)
	c.ZScore = copyFloats(s.ZScore)
	if s.Outlier != nil {
		c.Outlier = append([]bool(nil), s.Outlier...)
	}
	if s.UnusualReturn != nil {
		c.UnusualReturn = append([]bool(nil), s.UnusualReturn...)
	}
	return c
}

func copyFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}

// IsMissing reports whether a cleaned cell holds the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }
