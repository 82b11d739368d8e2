package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// HistogramOf bins the non-missing values into equal-width bins spanning
// [min, max]. Every bin is half open except the last, which also holds max.
// When all values are equal the range is widened to [v-0.5, v+0.5].
func HistogramOf(values []float64, bins int) (models.Histogram, error) {
	if bins < 1 {
		return models.Histogram{}, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return models.Histogram{}, ErrEmptyColumn
	}
	sort.Float64s(xs)

	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := floats.Span(make([]float64, bins+1), lo, hi)
	edges[0], edges[bins] = lo, hi

	// stat.Histogram bins are [d_i, d_i+1); nudge the last divider so max lands in the last bin.
	dividers := append([]float64(nil), edges...)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	raw := stat.Histogram(nil, dividers, xs, nil)
	counts := make([]int, bins)
	for i, c := range raw {
		counts[i] = int(c)
	}
	return models.Histogram{Edges: edges, Counts: counts}, nil
}

// Correlate computes the Pearson correlation matrix of the named columns.
// Each pair uses only rows where both values are present; pairs with fewer
// than two such rows, or with a constant column, are NaN.
func Correlate(t *models.Table, names []string, measures []Measure) models.Correlation {
	n := len(measures)
	cols := make([][]float64, n)
	for i, m := range measures {
		cols[i] = make([]float64, t.Len())
		for r, tr := range t.Transactions {
			cols[i][r] = m(tr)
		}
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := pairwiseCorrelation(cols[i], cols[j])
			matrix[i][j], matrix[j][i] = c, c
		}
	}
	return models.Correlation{Vars: append([]string(nil), names...), Matrix: matrix}
}

func pairwiseCorrelation(a, b []float64) float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(b))
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		xs = append(xs, a[i])
		ys = append(ys, b[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	if floats.Max(xs) == floats.Min(xs) || floats.Max(ys) == floats.Min(ys) {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
