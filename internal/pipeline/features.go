package pipeline

import (
	"fmt"

	"MarketScope/internal/calculator"
	"MarketScope/internal/model"
)

// FeatureOptions configures the derived-feature stage.
type FeatureOptions struct {
	RollingWindow    int
	OutlierThreshold float64 // |z-score| above this flags an outlier
	ReturnThreshold  float64 // percent daily move considered unusual
}

// DeriveFeatures computes daily returns, rolling mean/std, whole-series
// z-scores, and the outlier / unusual-return flags for every ticker. Each
// feature reads only that ticker's Close column. Runs on the raw price scale;
// call it before Normalize. Returns a new collection.
func DeriveFeatures(series map[string]*model.TickerSeries, opts FeatureOptions) (map[string]*model.TickerSeries, error) {
	out := make(map[string]*model.TickerSeries, len(series))
	for ticker, s := range series {
		c := s.Clone()

		c.DailyReturn = calculator.DailyReturns(c.Close)
		c.UnusualReturn = calculator.UnusualReturns(c.DailyReturn, opts.ReturnThreshold)

		means, stds, err := calculator.Rolling(c.Close, opts.RollingWindow)
		if err != nil {
			return nil, fmt.Errorf("rolling stats for %s: %w", ticker, err)
		}
		c.RollingMean = means
		c.RollingStd = stds

		c.ZScore = calculator.ZScores(c.Close)
		c.Outlier = calculator.Outliers(c.ZScore, opts.OutlierThreshold)

		out[ticker] = c
	}
	return out, nil
}
