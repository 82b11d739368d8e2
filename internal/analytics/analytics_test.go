package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

func table(txs ...models.Transaction) *models.Table {
	return &models.Table{Transactions: txs}
}

func tx(country, flow string, value float64) models.Transaction {
	return models.Transaction{Country: country, ImportExport: flow, Value: value, Weight: math.NaN(), Quantity: math.NaN()}
}

func threeRows() *models.Table {
	return table(
		tx("IN", "Import", 100),
		tx("IN", "Export", 50),
		tx("US", "Import", 30),
	)
}

func TestCrossTabulate_CountryByFlow(t *testing.T) {
	ct := CrossTabulate(threeRows(), Country, ImportExport)

	assert.Equal(t, []string{"IN", "US"}, ct.Rows)
	assert.Equal(t, []string{"Export", "Import"}, ct.Cols)
	assert.Equal(t, 1, ct.Get("IN", "Import"))
	assert.Equal(t, 1, ct.Get("IN", "Export"))
	assert.Equal(t, 1, ct.Get("US", "Import"))
	assert.Equal(t, 0, ct.Get("US", "Export"))
}

func TestSumBy_Country(t *testing.T) {
	sums := SumBy(threeRows(), Country, Value)
	assert.Equal(t, []models.GroupSum{{Key: "IN", Sum: 150}, {Key: "US", Sum: 30}}, sums)
}

func TestSumBy_MissingValues(t *testing.T) {
	tb := table(tx("IN", "Import", math.NaN()), tx("IN", "Import", 5), tx("BR", "Export", math.NaN()), tx("IN", "Export", math.NaN()))
	sums := SumBy(tb, Country, Value)
	assert.Equal(t, []models.GroupSum{{Key: "BR", Sum: 0}, {Key: "IN", Sum: 5}}, sums)
}

func TestValueCounts_SumsToRowsAndOrders(t *testing.T) {
	tb := table(
		tx("A", "Export", 1),
		tx("B", "Import", 1),
		tx("C", "Import", 1),
		tx("D", "Export", 1),
		tx("E", "Import", 1),
	)
	counts := ValueCounts(tb, ImportExport)
	require.Len(t, counts, 2)
	assert.Equal(t, "Import", counts[0].Key)
	assert.Equal(t, 3, counts[0].N)

	total := 0
	for _, c := range counts {
		total += c.N
	}
	assert.Equal(t, tb.Len(), total)

	pct := Percentages(counts)
	assert.InDelta(t, 100.0, pct[0]+pct[1], 1e-9)
	assert.InDelta(t, 60.0, pct[0], 1e-9)
}

func TestValueCounts_TiesKeepFirstAppearance(t *testing.T) {
	tb := table(tx("US", "", 1), tx("IN", "", 1), tx("BR", "", 1), tx("IN", "", 1), tx("US", "", 1))
	counts := ValueCounts(tb, Country)
	assert.Equal(t, []models.Count{{Key: "US", N: 2}, {Key: "IN", N: 2}, {Key: "BR", N: 1}}, counts)
}

func TestValueCounts_DropsMissingKeys(t *testing.T) {
	tb := table(tx("", "Import", 1), tx("IN", "", 1))
	assert.Equal(t, []models.Count{{Key: "Import", N: 1}}, ValueCounts(tb, ImportExport))
}

func TestPercentages_Empty(t *testing.T) {
	assert.Empty(t, Percentages(nil))
	assert.Equal(t, []float64{0}, Percentages([]models.Count{{Key: "x"}}))
}

func TestTopN(t *testing.T) {
	tests := []struct {
		name string
		sums []models.GroupSum
		n    int
		want []string
	}{
		{
			name: "fewer products than n",
			sums: []models.GroupSum{{Key: "a", Sum: 1}, {Key: "b", Sum: 3}},
			n:    10,
			want: []string{"b", "a"},
		},
		{
			name: "truncates to n",
			sums: []models.GroupSum{{Key: "a", Sum: 1}, {Key: "b", Sum: 3}, {Key: "c", Sum: 2}},
			n:    2,
			want: []string{"b", "c"},
		},
		{
			name: "ties by key",
			sums: []models.GroupSum{{Key: "z", Sum: 5}, {Key: "m", Sum: 5}, {Key: "a", Sum: 1}},
			n:    10,
			want: []string{"m", "z", "a"},
		},
		{
			name: "empty",
			sums: nil,
			n:    10,
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopN(tt.sums, tt.n)
			keys := make([]string, 0, len(got))
			for i, g := range got {
				keys = append(keys, g.Key)
				if i > 0 {
					assert.GreaterOrEqual(t, got[i-1].Sum, g.Sum)
				}
			}
			assert.Equal(t, tt.want, keys)
			assert.LessOrEqual(t, len(got), tt.n)
		})
	}
}

func TestTopN_DoesNotMutateInput(t *testing.T) {
	in := []models.GroupSum{{Key: "a", Sum: 1}, {Key: "b", Sum: 2}}
	_ = TopN(in, 1)
	assert.Equal(t, "a", in[0].Key)
}

func TestGroupValues_FirstAppearanceSkipsMissing(t *testing.T) {
	tb := table(
		models.Transaction{ShippingMethod: "Sea", Weight: 10},
		models.Transaction{ShippingMethod: "Air", Weight: 2},
		models.Transaction{ShippingMethod: "Sea", Weight: math.NaN()},
		models.Transaction{ShippingMethod: "Sea", Weight: 12},
		models.Transaction{ShippingMethod: "", Weight: 99},
	)
	g := GroupValues(tb, ShippingMethod, Weight)
	assert.Equal(t, []string{"Sea", "Air"}, g.Keys)
	assert.Equal(t, [][]float64{{10, 12}, {2}}, g.Values)
}

func TestGroupPairs(t *testing.T) {
	tb := table(
		models.Transaction{ImportExport: "Export", Weight: 1, Value: 10},
		models.Transaction{ImportExport: "Import", Weight: 2, Value: math.NaN()},
		models.Transaction{ImportExport: "Import", Weight: 3, Value: 30},
	)
	g := GroupPairs(tb, ImportExport, Weight, Value)
	assert.Equal(t, []string{"Export", "Import"}, g.Keys)
	assert.Equal(t, [][]float64{{1}, {3}}, g.X)
	assert.Equal(t, [][]float64{{10}, {30}}, g.Y)
}

func TestColumn(t *testing.T) {
	tb := table(tx("a", "", 1), tx("b", "", math.NaN()), tx("c", "", 3))
	assert.Equal(t, []float64{1, 3}, Column(tb, Value))
}

func TestMonthlyCounts(t *testing.T) {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	tb := table(
		models.Transaction{Date: d(2021, 3, 14)},
		models.Transaction{Date: d(2020, 12, 1)},
		models.Transaction{Date: d(2021, 3, 1)},
		models.Transaction{},
	)
	got := MonthlyCounts(tb)
	require.Len(t, got, 2)
	assert.Equal(t, d(2020, 12, 1), got[0].Month)
	assert.Equal(t, 1, got[0].N)
	assert.Equal(t, d(2021, 3, 1), got[1].Month)
	assert.Equal(t, 2, got[1].N)
}
