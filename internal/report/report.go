// Package report renders the analysis results as banner-sectioned console
// output. It holds no numeric logic of its own.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gcheema/passrush/internal/domain/stats"
	"github.com/gcheema/passrush/internal/store"
)

// Console layout constants.
const (
	ruleWidth          = 70
	significanceAlpha  = 0.05
	tabMinWidth        = 4
	tabPadding         = 2
	undefinedResult    = "undefined"
	groupColumnHeading = "Group"
)

// Writer renders report sections to a destination stream.
type Writer struct {
	out io.Writer
}

// New creates a report writer.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) rule() {
	fmt.Fprintln(w.out, strings.Repeat("=", ruleWidth))
}

// Banner prints a top-level section header.
func (w *Writer) Banner(lines ...string) {
	fmt.Fprintln(w.out)
	w.rule()
	for _, l := range lines {
		fmt.Fprintln(w.out, l)
	}
	w.rule()
}

// Summary renders a grouped summary as an aligned table.
func (w *Writer) Summary(s *stats.Summary) {
	w.Banner(strings.ToUpper(s.Title))
	if len(s.Rows) == 0 {
		fmt.Fprintln(w.out, "(no data)")
		return
	}

	tw := tabwriter.NewWriter(w.out, tabMinWidth, 0, tabPadding, ' ', 0)
	headings := []string{groupColumnHeading, "Plays"}
	for _, m := range s.Metrics {
		headings = append(headings, m.Name)
	}
	fmt.Fprintln(tw, strings.Join(headings, "\t"))

	for _, r := range s.Rows {
		cells := []string{r.Group, strconv.Itoa(r.Plays)}
		for i, v := range r.Values {
			cells = append(cells, strconv.FormatFloat(v, 'f', s.Metrics[i].Precision, 64))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

// ResultSet renders a SQL report as an aligned table.
func (w *Writer) ResultSet(rs *store.ResultSet) {
	w.Banner("SQL REPORT: " + strings.ToUpper(rs.Name))
	if len(rs.Rows) == 0 {
		fmt.Fprintln(w.out, "(no data)")
		return
	}

	tw := tabwriter.NewWriter(w.out, tabMinWidth, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rs.Columns, "\t"))
	for _, row := range rs.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// Significance renders the two-sample test verdict on yards gained.
func (w *Writer) Significance(res stats.TTest) {
	w.Banner("STATISTICAL SIGNIFICANCE (YARDS GAINED, PRESSURE VS NO PRESSURE)")
	if !res.Defined {
		fmt.Fprintf(w.out, "  t-statistic: %s\n  p-value: %s\n", undefinedResult, undefinedResult)
		fmt.Fprintln(w.out, "  Result: insufficient sample for the test")
		return
	}

	verdict := "NOT SIGNIFICANT"
	if res.P < significanceAlpha {
		verdict = "SIGNIFICANT"
	}
	fmt.Fprintf(w.out, "  t-statistic: %.3f\n", res.T)
	fmt.Fprintf(w.out, "  p-value: %.6f\n", res.P)
	fmt.Fprintf(w.out, "  degrees of freedom: %.1f\n", res.DF)
	fmt.Fprintf(w.out, "  Result: %s difference at alpha=%.2f\n", verdict, significanceAlpha)
}

// Findings renders the computed highlights of the run.
func (w *Writer) Findings(completionGapPts, yardsGap float64, bestAlignment, bestTiming string) {
	w.Banner("KEY FINDINGS")
	fmt.Fprintf(w.out, "  - Pressure lowers the completion rate by %.1f percentage points\n", completionGapPts)
	fmt.Fprintf(w.out, "  - Pressure takes away %.1f yards per attempt\n", yardsGap)
	if bestAlignment != "" {
		fmt.Fprintf(w.out, "  - Highest sack rate under pressure: %s\n", bestAlignment)
	}
	if bestTiming != "" {
		fmt.Fprintf(w.out, "  - Most disruptive pressure window: %s\n", bestTiming)
	}
}
