package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"MarketScope/internal/model"
)

// FileFetcher implements Fetcher over a directory of per-symbol CSV files,
// for offline runs and re-analysis of previously exported data.
//
// Expected layout: <dir>/<SYMBOL>.csv with a header row containing Date plus
// any of Open/High/Low/Close/Volume in any order. Cells are kept as text;
// empty cells become nil markers.
type FileFetcher struct {
	Dir string
}

// NewFileFetcher creates a fetcher reading CSVs from dir.
func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) FetchHistory(_ context.Context, symbol string, start, end time.Time) ([]model.RawBar, error) {
	path := filepath.Join(f.Dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := records[0]
	dateIdx := -1
	fieldIdx := map[model.Field]int{}
	for i, name := range header {
		if name == "Date" {
			dateIdx = i
			continue
		}
		for _, f := range model.Fields {
			if name == string(f) {
				fieldIdx[f] = i
			}
		}
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%s: missing Date column", path)
	}

	bars := make([]model.RawBar, 0, len(records)-1)
	for n, rec := range records[1:] {
		date, err := time.Parse("2006-01-02", rec[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse date: %w", path, n+1, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		bar := model.RawBar{Time: date}
		bar.Open = textCell(rec, fieldIdx, model.FieldOpen)
		bar.High = textCell(rec, fieldIdx, model.FieldHigh)
		bar.Low = textCell(rec, fieldIdx, model.FieldLow)
		bar.Close = textCell(rec, fieldIdx, model.FieldClose)
		bar.Volume = textCell(rec, fieldIdx, model.FieldVolume)
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func textCell(rec []string, idx map[model.Field]int, f model.Field) any {
	i, ok := idx[f]
	if !ok || i >= len(rec) || rec[i] == "" {
		return nil
	}
	return rec[i]
}
