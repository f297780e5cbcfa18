package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"MarketScope/internal/config"
	"MarketScope/internal/model"
)

// Outliers lists every flagged outlier row (Date, Close, Z-Score) per ticker.
func Outliers(w io.Writer, series map[string]*model.TickerSeries) {
	for _, ticker := range sortedKeys(series) {
		s := series[ticker]
		fmt.Fprintf(w, "Outliers for %s:\n", ticker)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Date\tClose\tZ-Score")
		n := 0
		for i := range s.Dates {
			if s.Outlier == nil || !s.Outlier[i] {
				continue
			}
			fmt.Fprintf(tw, "%s\t%.4f\t%.4f\n",
				s.Dates[i].Format(config.DateFormat), s.Close[i], s.ZScore[i])
			n++
		}
		tw.Flush()
		if n == 0 {
			fmt.Fprintln(w, "(none)")
		}
		fmt.Fprintln(w)
	}
}

// UnusualReturns lists every flagged unusual-return row (Date, Close,
// Daily Return) per ticker.
func UnusualReturns(w io.Writer, series map[string]*model.TickerSeries) {
	for _, ticker := range sortedKeys(series) {
		s := series[ticker]
		fmt.Fprintf(w, "Unusual Returns for %s:\n", ticker)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "Date\tClose\tDaily Return")
		n := 0
		for i := range s.Dates {
			if s.UnusualReturn == nil || !s.UnusualReturn[i] {
				continue
			}
			fmt.Fprintf(tw, "%s\t%.4f\t%+.2f%%\n",
				s.Dates[i].Format(config.DateFormat), s.Close[i], s.DailyReturn[i])
			n++
		}
		tw.Flush()
		if n == 0 {
			fmt.Fprintln(w, "(none)")
		}
		fmt.Fprintln(w)
	}
}

// Preview prints the first n rows of each ticker's table, the head() analogue
// used to eyeball cleaned and scaled data.
func Preview(w io.Writer, series map[string]*model.TickerSeries, n int) {
	for _, ticker := range sortedKeys(series) {
		s := series[ticker]
		fmt.Fprintf(w, "Data for %s:\n", ticker)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

		header := "Date"
		for _, f := range model.Fields {
			header += "\t" + string(f)
		}
		for _, name := range s.DerivedColumns() {
			header += "\t" + name
		}
		fmt.Fprintln(tw, header)

		rows := s.Len()
		if rows > n {
			rows = n
		}
		for i := 0; i < rows; i++ {
			line := s.Dates[i].Format(config.DateFormat)
			for _, f := range model.Fields {
				line += "\t" + formatCell(s.Col(f)[i])
			}
			for _, name := range s.DerivedColumns() {
				line += "\t" + formatCell(s.Derived(name)[i])
			}
			fmt.Fprintln(tw, line)
		}
		tw.Flush()
		fmt.Fprintln(w)
	}
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func sortedKeys(m map[string]*model.TickerSeries) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
