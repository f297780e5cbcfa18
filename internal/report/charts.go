package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"MarketScope/internal/calculator"
	"MarketScope/internal/config"
	"MarketScope/internal/model"
)

// ChartWriter renders line charts as standalone HTML files in Dir.
// Presentation only; nothing here feeds back into the data model.
type ChartWriter struct {
	Dir string
}

// NewChartWriter creates a writer rendering into dir.
func NewChartWriter(dir string) *ChartWriter {
	return &ChartWriter{Dir: dir}
}

// TickerCharts renders the per-ticker charts: closing price, daily return,
// rolling mean/std overlaid on price, and the decomposition components
// (when dec is non-nil).
func (c *ChartWriter) TickerCharts(s *model.TickerSeries, dec *calculator.Decomposition) error {
	dates := dateLabels(s)

	price := newLine(fmt.Sprintf("%s Closing Price Over Time", s.Ticker))
	price.SetXAxis(dates).AddSeries("Close Price", lineData(s.Close))
	if err := c.render(price, s.Ticker+"_close.html"); err != nil {
		return err
	}

	if s.DailyReturn != nil {
		ret := newLine(fmt.Sprintf("%s Daily Percentage Change (Returns)", s.Ticker))
		ret.SetXAxis(dates).AddSeries("Daily Return", lineData(s.DailyReturn))
		if err := c.render(ret, s.Ticker+"_daily_return.html"); err != nil {
			return err
		}
	}

	if s.RollingMean != nil {
		vol := newLine(fmt.Sprintf("%s Volatility Analysis (Rolling Mean & Std)", s.Ticker))
		vol.SetXAxis(dates).
			AddSeries("Close Price", lineData(s.Close)).
			AddSeries("Rolling Mean", lineData(s.RollingMean)).
			AddSeries("Rolling Std", lineData(s.RollingStd))
		if err := c.render(vol, s.Ticker+"_rolling.html"); err != nil {
			return err
		}
	}

	if dec != nil {
		dc := newLine(fmt.Sprintf("%s Seasonal Decomposition", s.Ticker))
		dc.SetXAxis(dates).
			AddSeries("Trend", lineData(dec.Trend)).
			AddSeries("Seasonal", lineData(dec.Seasonal)).
			AddSeries("Residual", lineData(dec.Residual))
		if err := c.render(dc, s.Ticker+"_decomposition.html"); err != nil {
			return err
		}
	}
	return nil
}

// CombinedCharts renders the all-tickers-in-one variants: closing price,
// daily return, rolling mean, rolling std, and one chart per decomposition
// component.
func (c *ChartWriter) CombinedCharts(series map[string]*model.TickerSeries, decs map[string]*calculator.Decomposition) error {
	tickers := sortedKeys(series)
	axis := longestAxis(series, tickers)

	combined := []struct {
		title  string
		file   string
		column func(*model.TickerSeries) []float64
	}{
		{"Closing Price Over Time", "all_close.html", func(s *model.TickerSeries) []float64 { return s.Close }},
		{"Daily Percentage Change", "all_daily_return.html", func(s *model.TickerSeries) []float64 { return s.DailyReturn }},
		{"Volatility Analysis (Rolling Mean)", "all_rolling_mean.html", func(s *model.TickerSeries) []float64 { return s.RollingMean }},
		{"Volatility Analysis (Rolling Standard Deviation)", "all_rolling_std.html", func(s *model.TickerSeries) []float64 { return s.RollingStd }},
	}
	for _, def := range combined {
		line := newLine(def.title)
		line.SetXAxis(axis)
		for _, t := range tickers {
			if col := def.column(series[t]); col != nil {
				line.AddSeries(t, lineData(col))
			}
		}
		if err := c.render(line, def.file); err != nil {
			return err
		}
	}

	if len(decs) > 0 {
		components := []struct {
			title  string
			file   string
			column func(*calculator.Decomposition) []float64
		}{
			{"Trend Components", "all_trend.html", func(d *calculator.Decomposition) []float64 { return d.Trend }},
			{"Seasonal Components", "all_seasonal.html", func(d *calculator.Decomposition) []float64 { return d.Seasonal }},
			{"Residual Components", "all_residual.html", func(d *calculator.Decomposition) []float64 { return d.Residual }},
		}
		for _, def := range components {
			line := newLine(def.title)
			line.SetXAxis(axis)
			for _, t := range tickers {
				if d, ok := decs[t]; ok {
					line.AddSeries(t, lineData(def.column(d)))
				}
			}
			if err := c.render(line, def.file); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *ChartWriter) render(line *charts.Line, name string) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(c.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := line.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}

func newLine(title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	return line
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if model.IsMissing(v) {
			// echarts gap placeholder
			data[i] = opts.LineData{Value: "-"}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func dateLabels(s *model.TickerSeries) []string {
	labels := make([]string, s.Len())
	for i, d := range s.Dates {
		labels[i] = d.Format(config.DateFormat)
	}
	return labels
}

func longestAxis(series map[string]*model.TickerSeries, tickers []string) []string {
	var longest *model.TickerSeries
	for _, t := range tickers {
		if longest == nil || series[t].Len() > longest.Len() {
			longest = series[t]
		}
	}
	if longest == nil {
		return nil
	}
	return dateLabels(longest)
}
