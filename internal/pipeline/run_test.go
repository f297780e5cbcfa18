package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScope/internal/collector"
	"MarketScope/internal/config"
	"MarketScope/internal/recorder"
	"MarketScope/internal/report"
)

func runConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.Tickers = []string{"AAA", "BBB"}
	cfg.Range.Start = "2024-01-01"
	cfg.Range.End = "2024-03-29"
	cfg.DataSource.Provider = "yahoo" // ignored; the test injects a mock fetcher
	cfg.Analysis.RollingWindow = 5
	cfg.Analysis.DecompositionPeriod = 10
	cfg.Output.Dir = t.TempDir()
	cfg.Output.CSV = true
	cfg.Output.Charts = true
	cfg.Output.Normalize = true
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunner_EndToEnd(t *testing.T) {
	cfg := runConfig(t)
	col := collector.NewCollector(&collector.MockFetcher{}, cfg.Tickers)

	var out bytes.Buffer
	runner := NewRunner(cfg, col, recorder.NewNoopRecorder(), &out)
	require.NoError(t, runner.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Basic Statistics for AAA")
	assert.Contains(t, text, "Missing Values for BBB")
	assert.Contains(t, text, "Outliers for AAA")
	assert.Contains(t, text, "Unusual Returns for BBB")

	for _, ticker := range cfg.Tickers {
		csvPath := filepath.Join(cfg.Output.Dir, ticker+"_data.csv")
		s, err := report.LoadCSV(csvPath)
		require.NoError(t, err, "persisted table must load back")
		assert.Positive(t, s.Len())
		assert.NotNil(t, s.DailyReturn, "derived columns persisted")

		_, err = os.Stat(filepath.Join(cfg.Output.Dir, ticker+"_close.html"))
		assert.NoError(t, err, "chart rendered for %s", ticker)
	}
	_, err := os.Stat(filepath.Join(cfg.Output.Dir, "all_close.html"))
	assert.NoError(t, err)
}

func TestRunner_InsufficientHistoryPropagates(t *testing.T) {
	cfg := runConfig(t)
	cfg.Range.End = "2024-01-05" // a handful of rows, far below two periods
	col := collector.NewCollector(&collector.MockFetcher{}, cfg.Tickers)

	runner := NewRunner(cfg, col, recorder.NewNoopRecorder(), &bytes.Buffer{})
	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient history")
}

func TestRunner_AcquisitionFailurePropagates(t *testing.T) {
	cfg := runConfig(t)
	col := collector.NewCollector(&collector.MockFetcher{Err: assert.AnError}, cfg.Tickers)

	runner := NewRunner(cfg, col, recorder.NewNoopRecorder(), &bytes.Buffer{})
	err := runner.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
