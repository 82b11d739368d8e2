// Package analytics derives the per-chart summaries from the trade
// transaction table. Every function reads the table without modifying it.
package analytics

import (
	"errors"
	"math"
	"sort"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// ErrEmptyColumn is returned when a numeric column has no non-missing values.
var ErrEmptyColumn = errors.New("column has no values")

// Key extracts a categorical column. An empty key counts as missing.
type Key func(models.Transaction) string

// Measure extracts a numeric column. NaN counts as missing.
type Measure func(models.Transaction) float64

// Column accessors used by the dashboard.
var (
	Category       Key = func(t models.Transaction) string { return t.Category }
	Country        Key = func(t models.Transaction) string { return t.Country }
	ImportExport   Key = func(t models.Transaction) string { return t.ImportExport }
	Product        Key = func(t models.Transaction) string { return t.Product }
	ShippingMethod Key = func(t models.Transaction) string { return t.ShippingMethod }
	PaymentTerms   Key = func(t models.Transaction) string { return t.PaymentTerms }

	Value    Measure = func(t models.Transaction) float64 { return t.Value }
	Weight   Measure = func(t models.Transaction) float64 { return t.Weight }
	Quantity Measure = func(t models.Transaction) float64 { return t.Quantity }
)

// ValueCounts counts rows per key, most frequent first. Ties keep the order
// in which keys first appear. Missing keys are dropped.
func ValueCounts(t *models.Table, key Key) []models.Count {
	pos := map[string]int{}
	var out []models.Count
	for _, tr := range t.Transactions {
		k := key(tr)
		if k == "" {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, models.Count{Key: k})
		}
		out[i].N++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	return out
}

// Percentages returns each count's share of the total, in percent.
func Percentages(counts []models.Count) []float64 {
	total := 0
	for _, c := range counts {
		total += c.N
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = 100 * float64(c.N) / float64(total)
	}
	return out
}

// CrossTabulate counts rows per (row, col) pair. Keys are sorted ascending.
func CrossTabulate(t *models.Table, row, col Key) models.CrossTab {
	cells := map[[2]string]int{}
	rows, cols := map[string]struct{}{}, map[string]struct{}{}
	for _, tr := range t.Transactions {
		r, c := row(tr), col(tr)
		if r == "" || c == "" {
			continue
		}
		rows[r] = struct{}{}
		cols[c] = struct{}{}
		cells[[2]string{r, c}]++
	}

	ct := models.CrossTab{Rows: sortedKeys(rows), Cols: sortedKeys(cols)}
	ct.Cells = make([][]int, len(ct.Rows))
	for i, r := range ct.Rows {
		ct.Cells[i] = make([]int, len(ct.Cols))
		for j, c := range ct.Cols {
			ct.Cells[i][j] = cells[[2]string{r, c}]
		}
	}
	return ct
}

// SumBy sums a measure per key, keys ascending. Missing values add nothing;
// a group whose values are all missing sums to 0.
func SumBy(t *models.Table, key Key, m Measure) []models.GroupSum {
	sums := map[string]float64{}
	for _, tr := range t.Transactions {
		k := key(tr)
		if k == "" {
			continue
		}
		v := m(tr)
		if math.IsNaN(v) {
			if _, ok := sums[k]; !ok {
				sums[k] = 0
			}
			continue
		}
		sums[k] += v
	}
	out := make([]models.GroupSum, 0, len(sums))
	for _, k := range sortedKeys(sums) {
		out = append(out, models.GroupSum{Key: k, Sum: sums[k]})
	}
	return out
}

// TopN returns at most n sums, largest first, ties broken by key.
func TopN(sums []models.GroupSum, n int) []models.GroupSum {
	out := append([]models.GroupSum(nil), sums...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}
		return out[i].Key < out[j].Key
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// GroupValues collects the non-missing values of a measure per key, in order
// of first appearance.
func GroupValues(t *models.Table, key Key, m Measure) models.Groups {
	pos := map[string]int{}
	var g models.Groups
	for _, tr := range t.Transactions {
		k := key(tr)
		v := m(tr)
		if k == "" || math.IsNaN(v) {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(g.Keys)
			pos[k] = i
			g.Keys = append(g.Keys, k)
			g.Values = append(g.Values, nil)
		}
		g.Values[i] = append(g.Values[i], v)
	}
	return g
}

// GroupPairs collects (x, y) pairs per key where both are present, in order
// of first appearance.
func GroupPairs(t *models.Table, key Key, x, y Measure) models.PairGroups {
	pos := map[string]int{}
	var g models.PairGroups
	for _, tr := range t.Transactions {
		k := key(tr)
		xv, yv := x(tr), y(tr)
		if k == "" || math.IsNaN(xv) || math.IsNaN(yv) {
			continue
		}
		i, ok := pos[k]
		if !ok {
			i = len(g.Keys)
			pos[k] = i
			g.Keys = append(g.Keys, k)
			g.X = append(g.X, nil)
			g.Y = append(g.Y, nil)
		}
		g.X[i] = append(g.X[i], xv)
		g.Y[i] = append(g.Y[i], yv)
	}
	return g
}

// Column returns the non-missing values of a measure.
func Column(t *models.Table, m Measure) []float64 {
	out := make([]float64, 0, t.Len())
	for _, tr := range t.Transactions {
		if v := m(tr); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
