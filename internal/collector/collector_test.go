package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/model"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func bar(d time.Time, close float64) model.RawBar {
	return model.RawBar{Time: d, Open: close - 1, High: close + 1, Low: close - 2, Close: close, Volume: 1000.0}
}

func TestCollect_UnionOfDates(t *testing.T) {
	fetcher := &MockFetcher{Bars: map[string][]model.RawBar{
		"AAA": {bar(day(0), 10), bar(day(1), 11)},
		"BBB": {bar(day(1), 20), bar(day(2), 21)},
	}}
	col := NewCollector(fetcher, []string{"AAA", "BBB"})

	history, err := col.Collect(context.Background(), day(0), day(2))
	require.NoError(t, err)

	require.Len(t, history.Dates, 3, "axis is the union of trading dates")
	assert.Equal(t, []time.Time{day(0), day(1), day(2)}, history.Dates)

	closes := history.Cells[model.FieldClose]
	assert.Equal(t, 10.0, closes["AAA"][0])
	assert.Equal(t, 11.0, closes["AAA"][1])
	assert.Nil(t, closes["AAA"][2], "a date AAA lacks keeps a nil cell, not a dropped row")
	assert.Nil(t, closes["BBB"][0])
	assert.Equal(t, 21.0, closes["BBB"][2])
}

func TestCollect_FetchErrorPropagates(t *testing.T) {
	col := NewCollector(&MockFetcher{Err: assert.AnError}, []string{"AAA"})
	_, err := col.Collect(context.Background(), day(0), day(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCollect_NoTickers(t *testing.T) {
	col := NewCollector(&MockFetcher{}, nil)
	_, err := col.Collect(context.Background(), day(0), day(2))
	assert.Error(t, err)
}

func TestGenerateMockBars_WeekdaysOnly(t *testing.T) {
	bars := GenerateMockBars(100, day(0), day(13)) // two full weeks
	require.Len(t, bars, 10)
	for _, b := range bars {
		wd := b.Time.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}
