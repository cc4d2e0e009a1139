package report_test

import (
	"bytes"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gcheema/passrush/internal/domain/model"
	"github.com/gcheema/passrush/internal/domain/stats"
	"github.com/gcheema/passrush/internal/report"
	"github.com/gcheema/passrush/internal/store"
)

func TestWriterSummary(t *testing.T) {
	Convey("Given a summary with one group", t, func() {
		table := model.Table{
			{ID: 1, Completion: true, YardsGained: 8},
			{ID: 2},
			{ID: 3},
			{ID: 4},
		}
		s := stats.Summarize("Pressure Impact on QB Performance", table,
			func(model.Play) (string, int) { return "All", 0 },
			[]stats.Metric{stats.CompletionPct})

		var buf bytes.Buffer
		report.New(&buf).Summary(s)

		Convey("Then the title, headings and exact rate appear", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "PRESSURE IMPACT ON QB PERFORMANCE")
			So(out, ShouldContainSubstring, "Completion %")
			So(out, ShouldContainSubstring, "25.0")
		})
	})

	Convey("Given an empty summary", t, func() {
		s := stats.Summarize("Empty", nil,
			func(model.Play) (string, int) { return "", 0 }, nil)
		var buf bytes.Buffer
		report.New(&buf).Summary(s)

		Convey("Then the section reports no data", func() {
			So(buf.String(), ShouldContainSubstring, "(no data)")
		})
	})
}

func TestWriterSignificance(t *testing.T) {
	Convey("Given a defined, significant result", t, func() {
		var buf bytes.Buffer
		report.New(&buf).Significance(stats.TTest{T: 8.21, P: 0.00001, DF: 1400.2, Defined: true})

		Convey("Then the verdict is SIGNIFICANT with fixed precision", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "t-statistic: 8.210")
			So(out, ShouldContainSubstring, "p-value: 0.000010")
			So(out, ShouldContainSubstring, "SIGNIFICANT")
		})
	})

	Convey("Given an undefined result", t, func() {
		var buf bytes.Buffer
		report.New(&buf).Significance(stats.TTest{T: math.NaN(), P: math.NaN(), DF: math.NaN()})

		Convey("Then the report says undefined rather than NaN", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "undefined")
			So(out, ShouldNotContainSubstring, "NaN")
		})
	})
}

func TestWriterResultSet(t *testing.T) {
	Convey("Given a SQL result set", t, func() {
		rs := &store.ResultSet{
			Name:    "pressure_impact",
			Columns: []string{"situation", "plays", "completion_pct"},
			Rows: [][]string{
				{"No Pressure", "65", "66.2"},
				{"Pressure", "35", "48.9"},
			},
		}
		var buf bytes.Buffer
		report.New(&buf).ResultSet(rs)

		Convey("Then columns and rows render in order", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "SQL REPORT: PRESSURE_IMPACT")
			So(out, ShouldContainSubstring, "situation")
			So(out, ShouldContainSubstring, "No Pressure")
			So(out, ShouldContainSubstring, "48.9")
		})
	})
}

func TestWriterFindings(t *testing.T) {
	Convey("Given computed findings", t, func() {
		var buf bytes.Buffer
		report.New(&buf).Findings(17.3, 2.7, "Blitz", "Immediate (<1.5s)")

		Convey("Then every finding line renders", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "17.3 percentage points")
			So(out, ShouldContainSubstring, "2.7 yards per attempt")
			So(out, ShouldContainSubstring, "Blitz")
			So(out, ShouldContainSubstring, "Immediate (<1.5s)")
		})
	})
}
