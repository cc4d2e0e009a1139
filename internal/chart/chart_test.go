package chart_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gcheema/passrush/internal/chart"
)

func sampleData() chart.Data {
	return chart.Data{
		CompletionPct:        [2]float64{66.2, 48.9},
		YardsPerAttempt:      [2]float64{6.8, 4.1},
		ThrowTimesNoPressure: []float64{1.8, 2.2, 2.5, 2.9, 3.4, 2.1, 2.6},
		ThrowTimesPressure:   []float64{1.5, 1.9, 2.3, 2.8, 3.1},
		CompletionByRelease: chart.CrossTab{
			Labels:     []string{"<2.0s", "2.0-2.5s", "2.5-3.0s", ">3.0s"},
			NoPressure: []float64{64.0, 66.5, 69.2, 70.1},
			Pressure:   []float64{42.1, 47.0, 50.3, 51.8},
		},
		SuccessByAlignment: chart.Bars{
			Labels: []string{"4-3 Base", "3-4 Base", "Nickel", "Dime", "Blitz"},
			Values: []float64{55.1, 54.3, 57.9, 58.8, 63.2},
		},
		SuccessByTiming: chart.Bars{
			Labels: []string{"<1.5s", "1.5-2.5s", "2.5-3.5s", ">3.5s"},
			Values: []float64{71.3, 63.0, 55.4, 49.8},
		},
	}
}

func TestRender(t *testing.T) {
	Convey("Given a full set of aggregates", t, func() {
		path := filepath.Join(t.TempDir(), "figure.png")

		Convey("When rendering the figure", func() {
			err := chart.Render(path, sampleData())

			Convey("Then a non-empty PNG exists at the destination", func() {
				So(err, ShouldBeNil)
				info, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
				So(info.Size(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When rendering with empty histogram groups", func() {
			d := sampleData()
			d.ThrowTimesNoPressure = nil
			d.ThrowTimesPressure = nil

			Convey("Then rendering still succeeds", func() {
				So(chart.Render(path, d), ShouldBeNil)
			})
		})

		Convey("When every aggregate is empty", func() {
			err := chart.Render(path, chart.Data{})

			Convey("Then the titled panels render with no bars", func() {
				So(err, ShouldBeNil)
				info, statErr := os.Stat(path)
				So(statErr, ShouldBeNil)
				So(info.Size(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the destination directory does not exist", func() {
			err := chart.Render(filepath.Join(t.TempDir(), "missing", "figure.png"), sampleData())

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
