package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/palette/brewer"
)

// gradient is a piecewise colour ramp over [0, 1], blended in Lab space.
type gradient []struct {
	col colorful.Color
	pos float64
}

func newGradient(hexes ...string) gradient {
	g := make(gradient, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("render: bad palette colour " + h)
		}
		g[i].col = c
		if len(hexes) > 1 {
			g[i].pos = float64(i) / float64(len(hexes)-1)
		}
	}
	return g
}

// at returns the interpolated colour for t in [0, 1].
func (g gradient) at(t float64) colorful.Color {
	if t <= g[0].pos {
		return g[0].col
	}
	if last := g[len(g)-1]; t >= last.pos {
		return last.col
	}
	for i := 0; i < len(g)-1; i++ {
		c1, c2 := g[i], g[i+1]
		if c1.pos <= t && t <= c2.pos {
			return c1.col.BlendLab(c2.col, (t-c1.pos)/(c2.pos-c1.pos)).Clamped()
		}
	}
	return g[len(g)-1].col
}

// colors samples n evenly spaced colours, ends included.
func (g gradient) colors(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = g.at(t)
	}
	return out
}

var (
	viridis  = newGradient("#440154", "#3b528b", "#21918c", "#5ec962", "#fde725")
	coolwarm = newGradient("#3b4cc0", "#8db0fe", "#dddddd", "#f49a7b", "#b40426")
	rocket   = newGradient("#35193e", "#701f57", "#ad1759", "#e13342", "#f37651", "#f6b48f")
	mako     = newGradient("#2e1e3b", "#413d7b", "#37659e", "#348fa7", "#40b7ad", "#8bdab2")
)

var (
	skyBlue    = mustHex("#87ceeb")
	lightGreen = mustHex("#90ee90")
	barBlue    = mustHex("#1f3fbf")
)

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic("render: bad colour " + h)
	}
	return c
}

// set1 returns n colours of the ColorBrewer Set1 palette, cycling past nine.
func set1(n int) []color.Color {
	base, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 9)
	if err != nil {
		panic(err)
	}
	cols := base.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cols[i%len(cols)]
	}
	return out
}

// toDrawing converts a colour for go-chart.
func toDrawing(c color.Color) drawing.Color {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}
