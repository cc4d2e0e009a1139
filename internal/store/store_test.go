package store_test

import (
	"context"
	"strconv"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gcheema/passrush/internal/domain/gen"
	"github.com/gcheema/passrush/internal/domain/model"
	"github.com/gcheema/passrush/internal/store"
)

func handMadeTable() model.Table {
	// 4 plays: 2 pressured (1 sack), 2 clean (1 completion).
	return model.Table{
		{ID: 1, Down: 1, Distance: 10, FieldPosition: 25, Quarter: 1, Rushers: 4,
			Alignment: model.AlignmentNickel, TimeToThrow: 2.1, Completion: true, YardsGained: 7.0},
		{ID: 2, Down: 2, Distance: 3, FieldPosition: 35, Quarter: 1, Rushers: 4,
			Alignment: model.AlignmentDime, TimeToThrow: 2.8},
		{ID: 3, Down: 3, Distance: 8, FieldPosition: 45, Quarter: 2, Rushers: 5,
			Alignment: model.AlignmentBlitz, PressureApplied: true, TimeToPressure: 1.2,
			TimeToThrow: 2.9, Sack: true, YardsGained: -5.0},
		{ID: 4, Down: 3, Distance: 12, FieldPosition: 55, Quarter: 4, ScoreDiff: -10, Rushers: 5,
			Alignment: model.AlignmentBlitz, PressureApplied: true, TimeToPressure: 2.0,
			TimeToThrow: 1.8, Completion: true, YardsGained: 4.0},
	}
}

func TestStorePressureImpact(t *testing.T) {
	Convey("Given a store loaded with a hand-made table", t, func() {
		ctx := context.Background()
		s, err := store.Open(ctx)
		So(err, ShouldBeNil)
		defer s.Close()
		So(s.InsertPlays(ctx, handMadeTable()), ShouldBeNil)

		Convey("When running the pressure impact report", func() {
			rs, qErr := s.PressureImpact(ctx)
			So(qErr, ShouldBeNil)

			Convey("Then groups come in no-pressure, pressure order", func() {
				So(rs.Rows, ShouldHaveLength, 2)
				So(rs.Rows[0][0], ShouldEqual, "No Pressure")
				So(rs.Rows[1][0], ShouldEqual, "Pressure")
			})

			Convey("Then rates are exact for the small table", func() {
				// No pressure: 1 completion of 2 plays.
				So(rs.Rows[0][2], ShouldEqual, "50")
				// Pressure: 1 sack of 2 plays.
				So(rs.Rows[1][4], ShouldEqual, "50")
			})
		})

		Convey("When running the alignment report", func() {
			rs, qErr := s.AlignmentEffectiveness(ctx)
			So(qErr, ShouldBeNil)

			Convey("Then only pressured plays are counted", func() {
				So(rs.Rows, ShouldHaveLength, 1)
				So(rs.Rows[0][0], ShouldEqual, string(model.AlignmentBlitz))
				So(rs.Rows[0][1], ShouldEqual, "2")
			})
		})

		Convey("When running the yards prevented report", func() {
			rs, qErr := s.YardsPreventedBySituation(ctx)
			So(qErr, ShouldBeNil)

			Convey("Then downs with only one side report undefined", func() {
				// Down 1 has no pressured plays.
				So(rs.Rows[0][0], ShouldEqual, "1")
				So(rs.Rows[0][3], ShouldEqual, "undefined")
			})
		})
	})
}

func TestStoreAllReports(t *testing.T) {
	Convey("Given a store loaded with a generated table", t, func() {
		ctx := context.Background()
		g, err := gen.New(gen.DefaultParams(), 21)
		So(err, ShouldBeNil)
		table, err := g.Generate(ctx, 5000)
		So(err, ShouldBeNil)

		s, err := store.Open(ctx)
		So(err, ShouldBeNil)
		defer s.Close()
		So(s.InsertPlays(ctx, table), ShouldBeNil)

		Convey("When running all eight reports", func() {
			reports, qErr := s.Reports(ctx)
			So(qErr, ShouldBeNil)

			Convey("Then every report has columns and rows", func() {
				So(reports, ShouldHaveLength, 8)
				for _, rs := range reports {
					So(rs.Columns, ShouldNotBeEmpty)
					So(rs.Rows, ShouldNotBeEmpty)
				}
			})

			Convey("Then the high-value report respects the sample floor", func() {
				highValue := reports[7]
				for _, row := range highValue.Rows {
					n, convErr := strconv.Atoi(row[2])
					So(convErr, ShouldBeNil)
					So(n, ShouldBeGreaterThan, 10)
				}
			})
		})
	})

	Convey("Given a store with no plays", t, func() {
		ctx := context.Background()
		s, err := store.Open(ctx)
		So(err, ShouldBeNil)
		defer s.Close()

		Convey("Then reports run and come back empty", func() {
			rs, qErr := s.PressureImpact(ctx)
			So(qErr, ShouldBeNil)
			So(rs.Rows, ShouldBeEmpty)
		})
	})
}
