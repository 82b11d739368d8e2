package render

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// Pie draws category shares labelled "<key> <pct>%" with one decimal.
// percentages must align with counts. go-chart starts the first wedge at
// three o'clock and runs clockwise.
func Pie(title string, counts []models.Count, percentages []float64) ([]byte, error) {
	if len(counts) != len(percentages) {
		return nil, fmt.Errorf("pie: %d counts for %d percentages", len(counts), len(percentages))
	}
	fills := []drawing.Color{toDrawing(skyBlue), toDrawing(lightGreen)}
	var values []chart.Value
	for i, c := range counts {
		if c.N == 0 {
			continue
		}
		fill := fills[i%len(fills)]
		values = append(values, chart.Value{
			Value: float64(c.N),
			Label: fmt.Sprintf("%s %.1f%%", c.Key, percentages[i]),
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}

	w, h := Square.pixels()
	pie := chart.PieChart{
		Title:  title,
		Width:  w,
		Height: h,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie: %w", err)
	}
	return buf.Bytes(), nil
}

// StackedBar draws one bar per cross-tab row, stacking its columns along the
// coolwarm ramp. Empty cells are left out of the stack.
func StackedBar(title string, ct models.CrossTab) ([]byte, error) {
	if len(ct.Rows) == 0 || len(ct.Cols) == 0 {
		return nil, ErrNoData
	}
	cols := coolwarm.colors(len(ct.Cols))

	bars := make([]chart.StackedBar, 0, len(ct.Rows))
	for i, row := range ct.Rows {
		bar := chart.StackedBar{Name: row}
		for j, col := range ct.Cols {
			n := ct.Cells[i][j]
			if n == 0 {
				continue
			}
			bar.Values = append(bar.Values, chart.Value{
				Value: float64(n),
				Label: col,
				Style: chart.Style{FillColor: toDrawing(cols[j]), StrokeColor: toDrawing(cols[j])},
			})
		}
		if len(bar.Values) > 0 {
			bars = append(bars, bar)
		}
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	w, h := Large.pixels()
	barWidth, spacing := stackedLayout(len(bars), w)
	for i := range bars {
		bars[i].Width = barWidth
	}
	sbc := chart.StackedBarChart{
		Title:      title,
		Width:      w,
		Height:     h,
		BarSpacing: spacing,
		XAxis:      chart.Style{TextRotationDegrees: 90},
		YAxis:      chart.Shown(),
		Bars:       bars,
	}
	var buf bytes.Buffer
	if err := sbc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render stacked bar: %w", err)
	}
	return buf.Bytes(), nil
}

// stackedLayout splits the plot width between n bars, a quarter of each slot
// going to the gap. The left margin is kept for the Y axis labels.
func stackedLayout(n, width int) (bar, spacing int) {
	const axisMargin = 80
	slot := (width - axisMargin) / n
	spacing = slot / 4
	bar = slot - spacing
	if bar < 1 {
		bar = 1
	}
	if spacing > 40 {
		spacing = 40
	}
	return bar, spacing
}
