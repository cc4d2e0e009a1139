// Package chart renders the six-panel summary figure. It consumes
// precomputed aggregates only; every number shown here is produced and
// tested upstream in the stats layer.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrRender is the sentinel kind for chart failures.
var ErrRender = errors.New("chart render failed")

// Figure geometry.
const (
	figWidth  = 16 * vg.Inch
	figHeight = 9 * vg.Inch
	tileRows  = 2
	tileCols  = 3
	histBins  = 20
)

var (
	tilePad  = vg.Points(16)
	barWidth = vg.Points(22)
)

// Team-style palette: navy for clean pockets, red for pressure.
var (
	colorNoPressure = color.RGBA{R: 0x01, G: 0x33, B: 0x69, A: 0xff}
	colorPressure   = color.RGBA{R: 0xd5, G: 0x0a, B: 0x0a, A: 0xff}
)

// Bars is one labeled bar series.
type Bars struct {
	Labels []string
	Values []float64
}

// CrossTab is a two-series bar panel: one value per label for each of the
// no-pressure and pressure groups.
type CrossTab struct {
	Labels     []string
	NoPressure []float64
	Pressure   []float64
}

// Data carries every aggregate the figure needs. The renderer does no
// numeric work beyond drawing these values.
type Data struct {
	// Panel (a): completion percentage, no pressure vs pressure.
	CompletionPct [2]float64
	// Panel (b): yards per attempt, no pressure vs pressure.
	YardsPerAttempt [2]float64
	// Panel (c): raw time-to-throw samples per group.
	ThrowTimesNoPressure []float64
	ThrowTimesPressure   []float64
	// Panel (d): completion rate by release-time bucket.
	CompletionByRelease CrossTab
	// Panel (e): defensive success rate by alignment.
	SuccessByAlignment Bars
	// Panel (f): defensive success rate by pressure-timing bucket.
	SuccessByTiming Bars
}

// Panels is the number of panels in the figure.
const Panels = tileRows * tileCols

// Render draws the figure and writes it as a PNG, going through a
// temporary sibling so a failed render leaves no partial image.
func Render(path string, d Data) (err error) {
	plots := make([][]*plot.Plot, tileRows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, tileCols)
	}

	if plots[0][0], err = pressureBarPanel("Completion Rate: Pressure vs No Pressure", "Completion %", d.CompletionPct); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if plots[0][1], err = pressureBarPanel("Yards/Attempt: Pressure vs No Pressure", "Yards per Attempt", d.YardsPerAttempt); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if plots[0][2], err = throwTimePanel(d); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if plots[1][0], err = crossTabPanel("Completion Rate by Release Time", "Completion %", d.CompletionByRelease); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if plots[1][1], err = barsPanel("Defensive Alignment Success Rate", "Success %", d.SuccessByAlignment, colorNoPressure); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if plots[1][2], err = barsPanel("Optimal Pressure Timing", "Success %", d.SuccessByTiming, colorPressure); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	img := vgimg.New(figWidth, figHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: tileRows, Cols: tileCols,
		PadX: tilePad, PadY: tilePad,
		PadTop: tilePad, PadBottom: tilePad,
		PadLeft: tilePad, PadRight: tilePad,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < tileRows; r++ {
		for c := 0; c < tileCols; c++ {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	png := vgimg.PngCanvas{Canvas: img}
	if _, writeErr := png.WriteTo(tmp); writeErr != nil {
		err = fmt.Errorf("%w: %w", ErrRender, writeErr)
		return err
	}
	if closeErr := tmp.Close(); closeErr != nil {
		err = fmt.Errorf("%w: %w", ErrRender, closeErr)
		return err
	}
	if renameErr := os.Rename(tmp.Name(), path); renameErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %w", ErrRender, renameErr)
	}
	return nil
}

// pressureBarPanel draws the two-bar pressure/no-pressure comparison.
func pressureBarPanel(title, yLabel string, values [2]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	noPressure, err := plotter.NewBarChart(plotter.Values{values[0]}, barWidth)
	if err != nil {
		return nil, err
	}
	noPressure.Color = colorNoPressure

	pressure, err := plotter.NewBarChart(plotter.Values{values[1]}, barWidth)
	if err != nil {
		return nil, err
	}
	pressure.Color = colorPressure
	pressure.XMin = 1

	p.Add(noPressure, pressure)
	p.NominalX("No Pressure", "Pressure")
	return p, nil
}

// throwTimePanel overlays the time-to-throw histograms of both groups.
func throwTimePanel(d Data) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Time to Throw Distribution"
	p.X.Label.Text = "Time to Throw (seconds)"
	p.Y.Label.Text = "Frequency"

	for _, series := range []struct {
		values []float64
		color  color.RGBA
		label  string
	}{
		{d.ThrowTimesNoPressure, colorNoPressure, "No Pressure"},
		{d.ThrowTimesPressure, colorPressure, "Pressure"},
	} {
		if len(series.values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(series.values), histBins)
		if err != nil {
			return nil, err
		}
		fill := series.color
		fill.A = 0x99
		h.FillColor = fill
		p.Add(h)
		p.Legend.Add(series.label, h)
	}
	p.Legend.Top = true
	return p, nil
}

// crossTabPanel draws paired bars per bucket.
func crossTabPanel(title, yLabel string, ct CrossTab) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	if len(ct.NoPressure) == 0 && len(ct.Pressure) == 0 {
		return p, nil
	}

	noPressure, err := plotter.NewBarChart(plotter.Values(ct.NoPressure), barWidth)
	if err != nil {
		return nil, err
	}
	noPressure.Color = colorNoPressure
	noPressure.Offset = -barWidth / 2

	pressure, err := plotter.NewBarChart(plotter.Values(ct.Pressure), barWidth)
	if err != nil {
		return nil, err
	}
	pressure.Color = colorPressure
	pressure.Offset = barWidth / 2

	p.Add(noPressure, pressure)
	p.Legend.Add("No Pressure", noPressure)
	p.Legend.Add("Pressure", pressure)
	p.Legend.Top = true
	p.NominalX(ct.Labels...)
	return p, nil
}

// barsPanel draws a single labeled bar series. An empty series yields the
// titled panel with no bars, so a run over zero plays still renders.
func barsPanel(title, yLabel string, b Bars, barColor color.RGBA) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	if len(b.Values) == 0 {
		return p, nil
	}

	bars, err := plotter.NewBarChart(plotter.Values(b.Values), barWidth)
	if err != nil {
		return nil, err
	}
	bars.Color = barColor

	p.Add(bars)
	p.NominalX(b.Labels...)
	return p, nil
}
