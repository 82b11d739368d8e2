package models

import "time"

// Count is one entry of a frequency table.
type Count struct {
	Key string `json:"key"`
	N   int    `json:"n"`
}

// GroupSum is the sum of a numeric column for one group key.
type GroupSum struct {
	Key string  `json:"key"`
	Sum float64 `json:"sum"`
}

// MonthCount is the number of transactions in one calendar month.
type MonthCount struct {
	Month time.Time `json:"month"`
	N     int       `json:"n"`
}

// CrossTab counts rows per (row key, column key) pair.
// Rows and Cols are sorted ascending; Cells[i][j] is 0 when a pair never occurs.
type CrossTab struct {
	Rows  []string `json:"rows"`
	Cols  []string `json:"cols"`
	Cells [][]int  `json:"cells"`
}

// Get returns the count for a row/column pair.
func (c CrossTab) Get(row, col string) int {
	for i, r := range c.Rows {
		if r != row {
			continue
		}
		for j, k := range c.Cols {
			if k == col {
				return c.Cells[i][j]
			}
		}
	}
	return 0
}

// Histogram holds len(Counts)+1 bin edges. The last bin is closed on the right.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// Total returns the sum of all bin counts.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Correlation is a symmetric Pearson correlation matrix over Vars.
type Correlation struct {
	Vars   []string    `json:"vars"`
	Matrix [][]float64 `json:"matrix"`
}

// Groups holds the raw non-missing values of a numeric column split by a key.
type Groups struct {
	Keys   []string    `json:"keys"`
	Values [][]float64 `json:"values"`
}

// PairGroups holds (x, y) pairs split by a key, for scatter plots.
type PairGroups struct {
	Keys []string    `json:"keys"`
	X    [][]float64 `json:"x"`
	Y    [][]float64 `json:"y"`
}
