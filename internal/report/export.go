package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"MarketScope/internal/config"
	"MarketScope/internal/model"
)

// SaveCSV writes one ticker's table to <dir>/<TICKER>_data.csv: header row, no
// index column, Date as ISO text, NaN cells empty, derived columns appended
// after the five price/volume columns.
func SaveCSV(dir string, s *model.TickerSeries) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, s.Ticker+"_data.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	derived := s.DerivedColumns()
	header := []string{"Date"}
	for _, fld := range model.Fields {
		header = append(header, string(fld))
	}
	header = append(header, derived...)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < s.Len(); i++ {
		rec := []string{s.Dates[i].Format(config.DateFormat)}
		for _, fld := range model.Fields {
			rec = append(rec, csvCell(s.Col(fld)[i]))
		}
		for _, name := range derived {
			rec = append(rec, csvCell(s.Derived(name)[i]))
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}
	return path, nil
}

// LoadCSV reads a table previously written by SaveCSV, parsing Date back to a
// calendar date and numeric cells back to float64 (empty cells become NaN).
func LoadCSV(path string) (*model.TickerSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	header := records[0]
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["Date"]; !ok {
		return nil, fmt.Errorf("%s: missing Date column", path)
	}

	ticker := strings.TrimSuffix(filepath.Base(path), "_data.csv")

	s := &model.TickerSeries{Ticker: ticker}
	rows := records[1:]
	s.Dates = make([]time.Time, len(rows))
	for _, fld := range model.Fields {
		s.SetCol(fld, make([]float64, len(rows)))
	}

	var derived = map[string][]float64{}
	for _, dn := range []string{"Daily Return", "Rolling Mean", "Rolling Std", "Z-Score"} {
		if _, ok := col[dn]; ok {
			derived[dn] = make([]float64, len(rows))
		}
	}

	for i, rec := range rows {
		d, err := time.Parse(config.DateFormat, rec[col["Date"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: parse date: %w", path, i+1, err)
		}
		s.Dates[i] = d
		for _, fld := range model.Fields {
			idx, ok := col[string(fld)]
			if !ok {
				s.Col(fld)[i] = math.NaN()
				continue
			}
			v, err := parseCell(rec[idx])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", path, i+1, fld, err)
			}
			s.Col(fld)[i] = v
		}
		for dn, dst := range derived {
			v, err := parseCell(rec[col[dn]])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %s: %w", path, i+1, dn, err)
			}
			dst[i] = v
		}
	}

	s.DailyReturn = derived["Daily Return"]
	s.RollingMean = derived["Rolling Mean"]
	s.RollingStd = derived["Rolling Std"]
	s.ZScore = derived["Z-Score"]
	return s, nil
}

// SaveXLSX writes one ticker's table to <dir>/<TICKER>_data.xlsx with the same
// layout as SaveCSV.
func SaveXLSX(dir string, s *model.TickerSeries) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, s.Ticker+"_data.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	derived := s.DerivedColumns()
	header := []string{"Date"}
	for _, fld := range model.Fields {
		header = append(header, string(fld))
	}
	header = append(header, derived...)
	for j, name := range header {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	for i := 0; i < s.Len(); i++ {
		row := i + 2
		values := []any{s.Dates[i].Format(config.DateFormat)}
		for _, fld := range model.Fields {
			values = append(values, xlsxCell(s.Col(fld)[i]))
		}
		for _, name := range derived {
			values = append(values, xlsxCell(s.Derived(name)[i]))
		}
		for j, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return "", err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return "", fmt.Errorf("write row %d: %w", i, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func csvCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseCell(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func xlsxCell(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
