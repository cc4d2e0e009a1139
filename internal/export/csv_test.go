package export_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gcheema/passrush/internal/domain/gen"
	"github.com/gcheema/passrush/internal/export"
)

func TestCSVRoundTrip(t *testing.T) {
	Convey("Given a generated table", t, func() {
		g, err := gen.New(gen.DefaultParams(), 11)
		So(err, ShouldBeNil)
		table, err := g.Generate(context.Background(), 300)
		So(err, ShouldBeNil)

		path := filepath.Join(t.TempDir(), "plays.csv")

		Convey("When exported and re-imported", func() {
			So(export.WriteCSV(path, table), ShouldBeNil)
			back, readErr := export.ReadCSV(path)

			Convey("Then the tables match exactly", func() {
				So(readErr, ShouldBeNil)
				So(back, ShouldHaveLength, len(table))
				So(back, ShouldResemble, table)
			})

			Convey("And the header names every field", func() {
				data, fileErr := os.ReadFile(path)
				So(fileErr, ShouldBeNil)
				first := strings.SplitN(string(data), "\n", 2)[0]
				So(first, ShouldEqual, strings.Join(export.Header, ","))
			})
		})

		Convey("When exporting the empty table", func() {
			So(export.WriteCSV(path, nil), ShouldBeNil)
			back, readErr := export.ReadCSV(path)

			Convey("Then the import is empty but well-typed", func() {
				So(readErr, ShouldBeNil)
				So(back, ShouldBeEmpty)
			})
		})
	})
}

func TestCSVFieldRendering(t *testing.T) {
	Convey("Given an exported table", t, func() {
		g, err := gen.New(gen.DefaultParams(), 11)
		So(err, ShouldBeNil)
		table, err := g.Generate(context.Background(), 200)
		So(err, ShouldBeNil)

		path := filepath.Join(t.TempDir(), "plays.csv")
		So(export.WriteCSV(path, table), ShouldBeNil)

		data, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")

		Convey("Then booleans render as 0/1", func() {
			for _, line := range lines[1:] {
				cols := strings.Split(line, ",")
				So(cols[6], ShouldBeIn, "0", "1")
				So(cols[11], ShouldBeIn, "0", "1")
			}
		})

		Convey("Then time_to_pressure is empty exactly when no pressure", func() {
			for _, line := range lines[1:] {
				cols := strings.Split(line, ",")
				if cols[6] == "0" {
					So(cols[7], ShouldBeEmpty)
				} else {
					So(cols[7], ShouldNotBeEmpty)
				}
			}
		})
	})
}

func TestCSVWriteFailure(t *testing.T) {
	Convey("Given an unwritable destination", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "missing", "plays.csv")

		Convey("Then the export fails and leaves nothing behind", func() {
			err := export.WriteCSV(path, nil)
			So(err, ShouldNotBeNil)

			entries, readErr := os.ReadDir(dir)
			So(readErr, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})
	})
}
