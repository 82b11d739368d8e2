package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// BoxPlot draws one box per group, in group order.
func BoxPlot(title, xLabel, yLabel string, g models.Groups) ([]byte, error) {
	if len(g.Keys) == 0 {
		return nil, ErrNoData
	}
	p := newPlot(title, xLabel, yLabel)
	cols := set1(len(g.Keys))
	for i, vals := range g.Values {
		b, err := plotter.NewBoxPlot(vg.Points(28), float64(i), plotter.Values(vals))
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", g.Keys[i], err)
		}
		b.FillColor = withAlpha(cols[i], 0.6)
		p.Add(b)
	}
	p.NominalX(g.Keys...)
	rotateX(p, 45)
	return encodePNG(p, Wide)
}

// BarStyle selects the bar colours.
type BarStyle int

const (
	// BarsSolid paints every bar the same blue.
	BarsSolid BarStyle = iota
	// BarsRocket paints bars along a dark red to peach ramp.
	BarsRocket
	// BarsMako paints bars along a dark blue to mint ramp.
	BarsMako
)

// BarChart draws one bar per key with its X labels rotated by rotate degrees.
func BarChart(title, xLabel, yLabel string, keys []string, values []float64, style BarStyle, rotate float64) ([]byte, error) {
	if len(keys) == 0 {
		return nil, ErrNoData
	}
	if len(keys) != len(values) {
		return nil, fmt.Errorf("bar chart: %d keys for %d values", len(keys), len(values))
	}

	var cols []color.Color
	switch style {
	case BarsRocket:
		cols = rocket.colors(len(keys))
	case BarsMako:
		cols = mako.colors(len(keys))
	default:
		cols = make([]color.Color, len(keys))
		for i := range cols {
			cols[i] = barBlue
		}
	}

	p := newPlot(title, xLabel, yLabel)
	width := barWidth(len(keys), Wide)
	for i, v := range values {
		bars, err := plotter.NewBarChart(plotter.Values{v}, width)
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", keys[i], err)
		}
		bars.XMin = float64(i)
		bars.Color = cols[i]
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	p.NominalX(keys...)
	p.Y.Min = 0
	rotateX(p, rotate)
	return encodePNG(p, Wide)
}

// barWidth leaves a gap of about a fifth of the slot between bars.
func barWidth(n int, size Size) vg.Length {
	w := size.Width * 0.8 / vg.Length(n+1)
	if hi := vg.Points(40); w > hi {
		return hi
	}
	if lo := vg.Points(1); w < lo {
		return lo
	}
	return w
}

// TimeLine draws monthly counts as a line with point markers.
func TimeLine(title, xLabel, yLabel string, months []models.MonthCount) ([]byte, error) {
	if len(months) == 0 {
		return nil, ErrNoData
	}
	pts := make(plotter.XYs, len(months))
	for i, m := range months {
		pts[i].X = float64(m.Month.Unix())
		pts[i].Y = float64(m.N)
	}

	p := newPlot(title, xLabel, yLabel)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}
	line.Color = barBlue
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = barBlue
	p.Add(plotter.NewGrid(), line, points)
	rotateX(p, 45)
	return encodePNG(p, Wide)
}

// Scatter draws x/y pairs coloured by group, with a legend.
func Scatter(title, xLabel, yLabel string, g models.PairGroups) ([]byte, error) {
	if len(g.Keys) == 0 {
		return nil, ErrNoData
	}
	p := newPlot(title, xLabel, yLabel)
	cols := set1(len(g.Keys))
	for i, key := range g.Keys {
		pts := make(plotter.XYs, len(g.X[i]))
		for j := range pts {
			pts[j].X, pts[j].Y = g.X[i][j], g.Y[i][j]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("scatter %q: %w", key, err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = cols[i]
		s.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(s)
		p.Legend.Add(key, s)
	}
	p.Legend.Top = true
	return encodePNG(p, Wide)
}

// HistogramBars draws each bin as its own bar, coloured along viridis.
func HistogramBars(title, xLabel, yLabel string, h models.Histogram) ([]byte, error) {
	if len(h.Counts) == 0 || len(h.Edges) != len(h.Counts)+1 {
		return nil, ErrNoData
	}
	p := newPlot(title, xLabel, yLabel)
	cols := viridis.colors(len(h.Counts))
	for i, n := range h.Counts {
		bin := &plotter.Histogram{
			Bins:      []plotter.HistogramBin{{Min: h.Edges[i], Max: h.Edges[i+1], Weight: float64(n)}},
			Width:     h.Edges[i+1] - h.Edges[i],
			FillColor: withAlpha(cols[i], 0.7),
			LineStyle: draw.LineStyle{Color: color.Black, Width: vg.Points(0.5)},
		}
		p.Add(bin)
	}
	p.Y.Min = 0
	return encodePNG(p, Wide)
}

// corrGrid exposes a correlation matrix as a heat map grid with the first
// variable on the top row.
type corrGrid struct {
	m [][]float64
}

func (g corrGrid) Dims() (int, int)   { return len(g.m), len(g.m) }
func (g corrGrid) Z(c, r int) float64 { return g.m[len(g.m)-1-r][c] }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// Heatmap draws an annotated correlation matrix on a diverging blue-red scale.
func Heatmap(title string, c models.Correlation) ([]byte, error) {
	n := len(c.Vars)
	if n == 0 || len(c.Matrix) != n {
		return nil, ErrNoData
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	grid := corrGrid{m: c.Matrix}
	hm := plotter.NewHeatMap(grid, cm.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 0xdd}

	var xys plotter.XYs
	var text []string
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			v := grid.Z(col, row)
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(row)})
			text = append(text, fmt.Sprintf("%.2f", v))
		}
	}

	p := newPlot(title, "", "")
	p.Add(hm)
	if len(xys) > 0 {
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
		if err != nil {
			return nil, fmt.Errorf("heatmap labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(labels)
	}

	reversed := make([]string, n)
	for i, v := range c.Vars {
		reversed[n-1-i] = v
	}
	p.NominalX(c.Vars...)
	p.NominalY(reversed...)
	return encodePNG(p, Medium)
}
