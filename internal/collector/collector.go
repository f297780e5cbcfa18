package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MarketScope/internal/logger"
	"MarketScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.RawBar // per symbol; generated when absent
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, start, end time.Time) ([]model.RawBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateMockBars(100, start, end), nil
}

// GenerateMockBars produces a deterministic daily walk over weekdays in [start, end].
func GenerateMockBars(basePrice float64, start, end time.Time) []model.RawBar {
	var bars []model.RawBar
	i := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + float64(i%40-20)*0.001)
		bars = append(bars, model.RawBar{
			Time:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: float64(1000000 + 1000*i),
		})
		i++
	}
	return bars
}

// Collector acquires raw history for a set of tickers through a Fetcher.
type Collector struct {
	Fetcher Fetcher
	Tickers []string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, tickers []string) *Collector {
	return &Collector{Fetcher: fetcher, Tickers: tickers}
}

// Collect fetches every ticker's bars and assembles them into one combined
// history keyed by (field, ticker) over the union of trading dates. A date a
// ticker has no bar for keeps its row with nil cells. Fetch errors propagate;
// there is no retry.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) (*model.RawHistory, error) {
	if len(c.Tickers) == 0 {
		return nil, fmt.Errorf("no tickers configured")
	}

	perTicker := make(map[string][]model.RawBar, len(c.Tickers))
	dateSet := make(map[time.Time]struct{})
	for _, t := range c.Tickers {
		bars, err := c.Fetcher.FetchHistory(ctx, t, start, end)
		if err != nil {
			return nil, fmt.Errorf("fetch history for %s: %w", t, err)
		}
		logger.L().Debug().Str("ticker", t).Int("bars", len(bars)).Msg("fetched history")
		perTicker[t] = bars
		for _, b := range bars {
			dateSet[b.Time] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rowOf := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowOf[d] = i
	}

	history := model.NewRawHistory(dates, c.Tickers)
	for t, bars := range perTicker {
		for _, b := range bars {
			row := rowOf[b.Time]
			for _, f := range model.Fields {
				history.Cells[f][t][row] = b.Cell(f)
			}
		}
	}
	return history, nil
}
