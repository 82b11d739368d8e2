package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

func TestHistogramOf_CountsSumToNonMissing(t *testing.T) {
	values := []float64{0.5, 10, math.NaN(), 3.3, 7, 10, 1, math.NaN(), 4.25, 9.99}
	h, err := HistogramOf(values, 20)
	require.NoError(t, err)

	require.Len(t, h.Counts, 20)
	require.Len(t, h.Edges, 21)
	assert.Equal(t, 8, h.Total())
	assert.Equal(t, 0.5, h.Edges[0])
	assert.Equal(t, 10.0, h.Edges[20])
	assert.Equal(t, 3, h.Counts[19], "max lands in the last bin")
	assert.Equal(t, 1, h.Counts[0])
}

func TestHistogramOf_ConstantColumn(t *testing.T) {
	h, err := HistogramOf([]float64{4, 4, 4}, 20)
	require.NoError(t, err)
	assert.Equal(t, 3.5, h.Edges[0])
	assert.Equal(t, 4.5, h.Edges[20])
	assert.Equal(t, 3, h.Total())
	nonEmpty := 0
	for _, c := range h.Counts {
		if c > 0 {
			nonEmpty++
		}
	}
	assert.Equal(t, 1, nonEmpty)
}

func TestHistogramOf_Errors(t *testing.T) {
	_, err := HistogramOf([]float64{math.NaN()}, 20)
	assert.ErrorIs(t, err, ErrEmptyColumn)

	_, err = HistogramOf(nil, 20)
	assert.ErrorIs(t, err, ErrEmptyColumn)

	_, err = HistogramOf([]float64{1}, 0)
	assert.Error(t, err)
}

func TestHistogramOf_LargeColumn(t *testing.T) {
	values := make([]float64, 3001)
	for i := range values {
		values[i] = float64((i * 7919) % 4999)
	}
	h, err := HistogramOf(values, 20)
	require.NoError(t, err)
	assert.Equal(t, len(values), h.Total())
}

func TestCorrelate(t *testing.T) {
	tb := &models.Table{Transactions: []models.Transaction{
		{Quantity: 1, Value: 2, Weight: 10},
		{Quantity: 2, Value: 4, Weight: math.NaN()},
		{Quantity: 3, Value: 6, Weight: 5},
		{Quantity: 4, Value: 8, Weight: 1},
	}}
	c := Correlate(tb, []string{"Quantity", "Value", "Weight"}, []Measure{Quantity, Value, Weight})

	require.Len(t, c.Matrix, 3)
	assert.Equal(t, []string{"Quantity", "Value", "Weight"}, c.Vars)
	for i := range c.Matrix {
		assert.InDelta(t, 1.0, c.Matrix[i][i], 1e-12)
		for j := range c.Matrix {
			assert.Equal(t, c.Matrix[i][j], c.Matrix[j][i])
		}
	}
	assert.InDelta(t, 1.0, c.Matrix[0][1], 1e-12)
	assert.Less(t, c.Matrix[0][2], -0.9)
}

func TestCorrelate_DegenerateIsNaN(t *testing.T) {
	tb := &models.Table{Transactions: []models.Transaction{
		{Quantity: 1, Value: 5, Weight: math.NaN()},
		{Quantity: 2, Value: 5, Weight: 3},
	}}
	c := Correlate(tb, []string{"Quantity", "Value", "Weight"}, []Measure{Quantity, Value, Weight})
	assert.True(t, math.IsNaN(c.Matrix[0][1]), "constant column")
	assert.True(t, math.IsNaN(c.Matrix[0][2]), "single complete pair")
	assert.True(t, math.IsNaN(c.Matrix[1][1]))
}
