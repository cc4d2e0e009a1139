package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gcheema/passrush/internal/domain/model"
)

func validPlay() model.Play {
	return model.Play{
		ID:            1,
		Down:          2,
		Distance:      7,
		FieldPosition: 42.0,
		Quarter:       3,
		ScoreDiff:     -3,
		Rushers:       4,
		Alignment:     model.AlignmentNickel,
		TimeToThrow:   2.41,
		Completion:    true,
		YardsGained:   8.5,
	}
}

func TestPlayValidate(t *testing.T) {
	Convey("Given a well-formed completed play", t, func() {
		p := validPlay()

		Convey("Then it validates", func() {
			So(p.Validate(), ShouldBeNil)
		})

		Convey("When two outcome flags are set", func() {
			p.Sack = true

			Convey("Then validation reports the conflict", func() {
				err := p.Validate()
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "mutually exclusive")
			})
		})

		Convey("When the down is out of range", func() {
			p.Down = 5
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("When time to pressure is set without pressure", func() {
			p.TimeToPressure = 1.8
			So(p.Validate(), ShouldNotBeNil)
		})

		Convey("When pressure is applied without a pressure time", func() {
			p.PressureApplied = true
			p.TimeToPressure = 0
			So(p.Validate(), ShouldNotBeNil)
		})
	})

	Convey("Given a sack", t, func() {
		p := validPlay()
		p.Completion = false
		p.Sack = true
		p.PressureApplied = true
		p.TimeToPressure = 1.2
		p.YardsGained = -6.0

		Convey("Then negative yardage validates", func() {
			So(p.Validate(), ShouldBeNil)
		})

		Convey("Then positive yardage is rejected", func() {
			p.YardsGained = 3.0
			So(p.Validate(), ShouldNotBeNil)
		})
	})

	Convey("Given an incompletion with nonzero yards", t, func() {
		p := validPlay()
		p.Completion = false
		p.YardsGained = 4.0

		Convey("Then validation fails", func() {
			So(p.Validate(), ShouldNotBeNil)
		})
	})
}

func TestTableHelpers(t *testing.T) {
	Convey("Given a table with mixed pressure plays", t, func() {
		pressured := validPlay()
		pressured.ID = 2
		pressured.PressureApplied = true
		pressured.TimeToPressure = 1.5

		table := model.Table{validPlay(), pressured}

		Convey("Then Pressured and Unpressured partition the table", func() {
			So(table.Pressured(), ShouldHaveLength, 1)
			So(table.Unpressured(), ShouldHaveLength, 1)
			So(table.Pressured()[0].ID, ShouldEqual, 2)
		})

		Convey("Then column extraction preserves order", func() {
			So(table.YardsGained(), ShouldResemble, []float64{8.5, 8.5})
			So(table.TimesToThrow(), ShouldHaveLength, 2)
		})

		Convey("Then filtering never mutates the source", func() {
			_ = table.Filter(func(model.Play) bool { return false })
			So(table, ShouldHaveLength, 2)
		})
	})

	Convey("Given the empty table", t, func() {
		var table model.Table

		Convey("Then it validates and all derivations are empty", func() {
			So(table.Validate(), ShouldBeNil)
			So(table.Pressured(), ShouldBeEmpty)
			So(table.YardsGained(), ShouldBeEmpty)
		})
	})
}

func TestPressureBeatThrow(t *testing.T) {
	Convey("Given a pressured play", t, func() {
		p := validPlay()
		p.PressureApplied = true
		p.TimeToPressure = 1.9
		p.TimeToThrow = 2.4

		Convey("Then pressure arriving before the throw beats it", func() {
			So(p.PressureBeatThrow(), ShouldBeTrue)
		})

		Convey("Then pressure arriving after the throw does not", func() {
			p.TimeToPressure = 3.0
			So(p.PressureBeatThrow(), ShouldBeFalse)
		})
	})

	Convey("Given an unpressured play", t, func() {
		p := validPlay()

		Convey("Then pressure never beats the throw", func() {
			So(p.PressureBeatThrow(), ShouldBeFalse)
		})
	})
}
