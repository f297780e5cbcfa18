package collector

import (
	"context"
	"time"

	"MarketScope/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
type Fetcher interface {
	// FetchHistory returns daily bars for one symbol over [start, end],
	// sorted by date ascending. Cells stay untyped; missing provider values
	// are nil, never dropped rows.
	FetchHistory(ctx context.Context, symbol string, start, end time.Time) ([]model.RawBar, error)
	Name() string
}
