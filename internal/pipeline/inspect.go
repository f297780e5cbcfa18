package pipeline

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"

	"MarketScope/internal/model"
)

// The inspection reports are read-only diagnostics: they write text and never
// mutate a series. Output ordering is stable (tickers sorted) so repeated runs
// diff cleanly.

// TypeCensus reports, per column of each untyped series, how many cells are
// numeric, text, or missing. This is the declared-type report for raw data.
func TypeCensus(w io.Writer, raw map[string]*model.RawSeries) {
	for _, ticker := range sortedRawKeys(raw) {
		s := raw[ticker]
		fmt.Fprintf(w, "Cell Types for %s:\n", ticker)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Column\tNumeric\tText\tMissing")
		for _, f := range model.Fields {
			var numeric, text, missing int
			for _, cell := range s.Cols[f] {
				switch cell.(type) {
				case nil:
					missing++
				case string:
					text++
				default:
					numeric++
				}
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", f, numeric, text, missing)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}
}

// Describe reports count, mean, std, min, quartiles, and max for every
// numeric column of each series, derived columns included when present.
func Describe(w io.Writer, series map[string]*model.TickerSeries) {
	for _, ticker := range sortedKeys(series) {
		s := series[ticker]
		fmt.Fprintf(w, "Basic Statistics for %s:\n", ticker)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Column\tCount\tMean\tStd\tMin\t25%\t50%\t75%\tMax")
		for _, f := range model.Fields {
			describeColumn(tw, string(f), s.Col(f))
		}
		for _, name := range s.DerivedColumns() {
			describeColumn(tw, name, s.Derived(name))
		}
		tw.Flush()
		fmt.Fprintln(w)
	}
}

// MissingCounts reports the number of missing cells per column of each series.
func MissingCounts(w io.Writer, series map[string]*model.TickerSeries) {
	for _, ticker := range sortedKeys(series) {
		s := series[ticker]
		fmt.Fprintf(w, "Missing Values for %s:\n", ticker)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, f := range model.Fields {
			n := 0
			for _, v := range s.Col(f) {
				if math.IsNaN(v) {
					n++
				}
			}
			fmt.Fprintf(tw, "%s\t%d\n", f, n)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}
}

func describeColumn(w io.Writer, name string, col []float64) {
	valid := make([]float64, 0, len(col))
	for _, v := range col {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		fmt.Fprintf(w, "%s\t0\t-\t-\t-\t-\t-\t-\t-\n", name)
		return
	}
	sort.Float64s(valid)

	mean := stat.Mean(valid, nil)
	std := 0.0
	if len(valid) > 1 {
		std = stat.StdDev(valid, nil)
	}
	fmt.Fprintf(w, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
		name, len(valid), mean, std,
		valid[0],
		stat.Quantile(0.25, stat.LinInterp, valid, nil),
		stat.Quantile(0.50, stat.LinInterp, valid, nil),
		stat.Quantile(0.75, stat.LinInterp, valid, nil),
		valid[len(valid)-1],
	)
}

func sortedKeys(m map[string]*model.TickerSeries) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRawKeys(m map[string]*model.RawSeries) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
