// Package render turns aggregates into chart artifacts: PNG images drawn with
// gonum/plot or go-chart, and Plotly figures encoded as JSON.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoData is returned when an aggregate has nothing to draw.
var ErrNoData = errors.New("nothing to plot")

// ContentType values of the produced artifacts.
const (
	ContentTypePNG  = "image/png"
	ContentTypeJSON = "application/json"
)

// Size is the canvas size of a static chart.
type Size struct {
	Width, Height vg.Length
}

// Canvas sizes per chart family.
var (
	Wide   = Size{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
	Large  = Size{Width: 12 * vg.Inch, Height: 7 * vg.Inch}
	Square = Size{Width: 6 * vg.Inch, Height: 6 * vg.Inch}
	Medium = Size{Width: 8 * vg.Inch, Height: 6 * vg.Inch}
)

// pixels converts a canvas length to pixels at the default PNG resolution.
func (s Size) pixels() (int, int) {
	const dpi = 96
	return int(math.Round(s.Width.Dots(dpi))), int(math.Round(s.Height.Dots(dpi)))
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

// rotateX tilts the X tick labels by deg degrees.
func rotateX(p *plot.Plot, deg float64) {
	p.X.Tick.Label.Rotation = deg * math.Pi / 180
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

func encodePNG(p *plot.Plot, size Size) ([]byte, error) {
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func withAlpha(c color.Color, a float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(math.Round(a * 255))}
}
