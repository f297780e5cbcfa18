package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/model"
)

func rawSeries(ticker string, cells map[model.Field][]any, dates ...time.Time) *model.RawSeries {
	s := &model.RawSeries{Ticker: ticker, Dates: dates, Cols: make(map[model.Field][]any)}
	for _, f := range model.Fields {
		if c, ok := cells[f]; ok {
			s.Cols[f] = c
		} else {
			s.Cols[f] = make([]any, len(dates))
			for i := range s.Cols[f] {
				s.Cols[f][i] = 1.0
			}
		}
	}
	return s
}

func TestStandardize(t *testing.T) {
	raw := map[string]*model.RawSeries{
		"AAA": rawSeries("AAA", map[model.Field][]any{
			model.FieldClose: {100.0, "101.5", nil},
		}, day(0), day(1), day(2)),
	}

	series, err := Standardize(raw)
	require.NoError(t, err)
	s := series["AAA"]

	assert.Equal(t, 100.0, s.Close[0])
	assert.Equal(t, 101.5, s.Close[1], "numeric strings parse")
	assert.True(t, math.IsNaN(s.Close[2]), "nil cells become the missing marker")
	for _, f := range model.Fields {
		assert.Len(t, s.Col(f), 3)
	}
}

func TestStandardize_MissingTokens(t *testing.T) {
	raw := map[string]*model.RawSeries{
		"AAA": rawSeries("AAA", map[model.Field][]any{
			model.FieldVolume: {"", "null", "NaN", "-", "NA"},
		}, day(0), day(1), day(2), day(3), day(4)),
	}

	series, err := Standardize(raw)
	require.NoError(t, err)
	for i, v := range series["AAA"].Volume {
		assert.True(t, math.IsNaN(v), "token at row %d", i)
	}
}

func TestStandardize_CoercionFailure(t *testing.T) {
	raw := map[string]*model.RawSeries{
		"AAA": rawSeries("AAA", map[model.Field][]any{
			model.FieldHigh: {10.0, "garbage"},
		}, day(0), day(1)),
	}

	_, err := Standardize(raw)
	require.Error(t, err)

	var cerr *CoercionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "AAA", cerr.Ticker)
	assert.Equal(t, model.FieldHigh, cerr.Column)
	assert.Equal(t, 1, cerr.Row)
}
