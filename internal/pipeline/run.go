package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"MarketScope/internal/calculator"
	"MarketScope/internal/collector"
	"MarketScope/internal/config"
	"MarketScope/internal/logger"
	"MarketScope/internal/model"
	"MarketScope/internal/recorder"
	"MarketScope/internal/report"
)

// Runner executes one full pipeline pass: acquire, separate, inspect,
// standardize, handle missing values, derive features on the raw price scale,
// decompose, normalize, and finally report, chart, persist, and record.
//
// The stage order is a contract: raw-scale analysis (returns, z-scores,
// decomposition) always runs before normalization overwrites the raw columns.
type Runner struct {
	Cfg       *config.Config
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Out       io.Writer
}

// NewRunner wires a runner from its collaborators.
func NewRunner(cfg *config.Config, col *collector.Collector, rec recorder.Recorder, out io.Writer) *Runner {
	return &Runner{Cfg: cfg, Collector: col, Recorder: rec, Out: out}
}

// Run executes the pipeline once. Acquisition, coercion, and
// insufficient-history errors propagate; recording failures are logged only.
func (r *Runner) Run(ctx context.Context) error {
	startedAt := time.Now()
	start, end, err := r.Cfg.StartEnd()
	if err != nil {
		return err
	}

	logger.L().Info().
		Strs("tickers", r.Cfg.Tickers).
		Str("start", r.Cfg.Range.Start).
		Str("end", r.Cfg.Range.End).
		Str("source", r.Collector.Fetcher.Name()).
		Msg("pipeline run starting")

	history, err := r.Collector.Collect(ctx, start, end)
	if err != nil {
		return fmt.Errorf("acquisition: %w", err)
	}

	raw := Separate(history, r.Cfg.Tickers)
	TypeCensus(r.Out, raw)

	typed, err := Standardize(raw)
	if err != nil {
		return err
	}
	Describe(r.Out, typed)
	MissingCounts(r.Out, typed)
	missingBefore := countMissing(typed)

	strategy, err := ParseStrategy(r.Cfg.Cleaning.MissingStrategy)
	if err != nil {
		return err
	}
	cleaned := HandleMissing(typed, strategy)

	derived, err := DeriveFeatures(cleaned, FeatureOptions{
		RollingWindow:    r.Cfg.Analysis.RollingWindow,
		OutlierThreshold: r.Cfg.Analysis.OutlierThreshold,
		ReturnThreshold:  r.Cfg.Analysis.ReturnThreshold,
	})
	if err != nil {
		return err
	}

	decs := make(map[string]*calculator.Decomposition, len(derived))
	for ticker, s := range derived {
		dec, err := calculator.Decompose(s.Close, r.Cfg.Analysis.DecompositionPeriod)
		if err != nil {
			return fmt.Errorf("decompose %s: %w", ticker, err)
		}
		decs[ticker] = dec
	}

	report.Outliers(r.Out, derived)
	report.UnusualReturns(r.Out, derived)

	final := derived
	if r.Cfg.Output.Normalize {
		final = Normalize(derived)
	}
	report.Preview(r.Out, final, 5)

	if r.Cfg.Output.Charts {
		cw := report.NewChartWriter(r.Cfg.Output.Dir)
		for _, ticker := range sortedKeys(final) {
			if err := cw.TickerCharts(final[ticker], decs[ticker]); err != nil {
				return fmt.Errorf("charts for %s: %w", ticker, err)
			}
		}
		if err := cw.CombinedCharts(final, decs); err != nil {
			return fmt.Errorf("combined charts: %w", err)
		}
	}

	for _, ticker := range sortedKeys(final) {
		if r.Cfg.Output.CSV {
			path, err := report.SaveCSV(r.Cfg.Output.Dir, final[ticker])
			if err != nil {
				return fmt.Errorf("save csv for %s: %w", ticker, err)
			}
			logger.L().Info().Str("ticker", ticker).Str("path", path).Msg("csv saved")
		}
		if r.Cfg.Output.XLSX {
			path, err := report.SaveXLSX(r.Cfg.Output.Dir, final[ticker])
			if err != nil {
				return fmt.Errorf("save xlsx for %s: %w", ticker, err)
			}
			logger.L().Info().Str("ticker", ticker).Str("path", path).Msg("xlsx saved")
		}
	}

	if err := r.Recorder.RecordRun(startedAt, snapshots(derived, missingBefore)); err != nil {
		logger.L().Error().Err(err).Msg("record run")
	}

	logger.L().Info().Dur("elapsed", time.Since(startedAt)).Msg("pipeline run finished")
	return nil
}

func countMissing(series map[string]*model.TickerSeries) map[string]int {
	counts := make(map[string]int, len(series))
	for ticker, s := range series {
		n := 0
		for _, f := range model.Fields {
			for _, v := range s.Col(f) {
				if math.IsNaN(v) {
					n++
				}
			}
		}
		counts[ticker] = n
	}
	return counts
}

func snapshots(series map[string]*model.TickerSeries, missingBefore map[string]int) []recorder.RunSnapshot {
	snaps := make([]recorder.RunSnapshot, 0, len(series))
	for _, ticker := range sortedKeys(series) {
		s := series[ticker]
		snap := recorder.RunSnapshot{
			Ticker:       ticker,
			Rows:         s.Len(),
			MissingCells: missingBefore[ticker],
		}
		for i := range s.Dates {
			if s.Outlier[i] {
				snap.Outliers++
			}
			if s.UnusualReturn[i] {
				snap.UnusualReturns++
			}
		}

		returns := make([]float64, 0, s.Len())
		for _, v := range s.DailyReturn {
			if !math.IsNaN(v) {
				returns = append(returns, v)
			}
		}
		if len(returns) > 0 {
			sorted := append([]float64(nil), returns...)
			sort.Float64s(sorted)
			snap.MeanReturn = stat.Mean(returns, nil)
			snap.MinReturn = sorted[0]
			snap.MaxReturn = sorted[len(sorted)-1]
		}
		if s.Len() > 0 {
			snap.LastClose = s.Close[s.Len()-1]
		}
		snaps = append(snaps, snap)
	}
	return snaps
}
