package stats_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gcheema/passrush/internal/domain/model"
	"github.com/gcheema/passrush/internal/domain/stats"
)

// tinyTable builds a hand-constructed table: 4 plays in group "a"
// (1 completion), and groups "b" and "c" with controlled sizes.
func playsInGroup(group string, n, completions int) model.Table {
	t := make(model.Table, n)
	for i := range t {
		t[i] = model.Play{
			ID:          i + 1,
			Down:        1,
			Distance:    10,
			Quarter:     1,
			Alignment:   model.Alignment(group),
			TimeToThrow: 2.0,
			Completion:  i < completions,
		}
		if t[i].Completion {
			t[i].YardsGained = 6.0
		}
	}
	return t
}

func byAlignment(p model.Play) (string, int) {
	return string(p.Alignment), int(p.Alignment[0])
}

func TestSummarizeExactRates(t *testing.T) {
	Convey("Given 4 plays with exactly 1 completion", t, func() {
		table := playsInGroup("a", 4, 1)

		Convey("When summarized with the completion metric", func() {
			s := stats.Summarize("t", table, byAlignment, []stats.Metric{stats.CompletionPct})

			Convey("Then the rate is exactly 25.0", func() {
				So(s.Rows, ShouldHaveLength, 1)
				So(s.Rows[0].Plays, ShouldEqual, 4)
				So(s.Rows[0].Values[0], ShouldEqual, 25.0)
			})
		})
	})

	Convey("Given any summarized boolean metric", t, func() {
		table := append(playsInGroup("a", 7, 3), playsInGroup("b", 5, 5)...)
		s := stats.Summarize("t", table, byAlignment,
			[]stats.Metric{stats.CompletionPct, stats.SackPct, stats.SuccessPct})

		Convey("Then every percentage is within [0, 100]", func() {
			for _, r := range s.Rows {
				for _, v := range r.Values {
					So(v, ShouldBeGreaterThanOrEqualTo, 0)
					So(v, ShouldBeLessThanOrEqualTo, 100)
				}
			}
		})
	})

	Convey("Given an empty table", t, func() {
		s := stats.Summarize("t", nil, byAlignment, []stats.Metric{stats.CompletionPct})

		Convey("Then the summary has no rows", func() {
			So(s.Rows, ShouldBeEmpty)
		})
	})
}

func TestSummaryOrderingAndFiltering(t *testing.T) {
	Convey("Given groups of sizes 5, 15 and 30", t, func() {
		table := playsInGroup("a", 5, 1)
		table = append(table, playsInGroup("b", 15, 10)...)
		table = append(table, playsInGroup("c", 30, 10)...)

		s := stats.Summarize("t", table, byAlignment, []stats.Metric{stats.CompletionPct})

		Convey("Then groups come back in ascending key order", func() {
			So(s.Rows[0].Group, ShouldEqual, "a")
			So(s.Rows[1].Group, ShouldEqual, "b")
			So(s.Rows[2].Group, ShouldEqual, "c")
		})

		Convey("When filtering with threshold 10", func() {
			filtered := s.MinSamples(10)

			Convey("Then exactly the 15 and 30 groups remain, in order", func() {
				So(filtered.Rows, ShouldHaveLength, 2)
				So(filtered.Rows[0].Group, ShouldEqual, "b")
				So(filtered.Rows[1].Group, ShouldEqual, "c")
			})

			Convey("And the source summary is untouched", func() {
				So(s.Rows, ShouldHaveLength, 3)
			})
		})

		Convey("When ordering by completion rate descending", func() {
			sorted := s.SortByDesc(stats.MetricCompletionPct)

			// b: 10/15 ~ 66.7, c: 10/30 ~ 33.3, a: 1/5 = 20.0
			Convey("Then rows follow the metric, not the key", func() {
				So(sorted.Rows[0].Group, ShouldEqual, "b")
				So(sorted.Rows[1].Group, ShouldEqual, "c")
				So(sorted.Rows[2].Group, ShouldEqual, "a")
			})
		})

		Convey("When ordering by an unknown metric", func() {
			sorted := s.SortByDesc("nope")

			Convey("Then the key order is preserved", func() {
				So(sorted.Rows[0].Group, ShouldEqual, "a")
			})
		})
	})
}

func TestSummaryValueLookup(t *testing.T) {
	Convey("Given a summary", t, func() {
		s := stats.Summarize("t", playsInGroup("a", 4, 2), byAlignment,
			[]stats.Metric{stats.CompletionPct})

		Convey("Then known cells resolve", func() {
			v, ok := s.Value("a", stats.MetricCompletionPct)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 50.0)
		})

		Convey("Then unknown groups and metrics do not", func() {
			_, ok := s.Value("z", stats.MetricCompletionPct)
			So(ok, ShouldBeFalse)
			_, ok = s.Value("a", "nope")
			So(ok, ShouldBeFalse)
		})
	})
}
