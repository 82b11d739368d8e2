package models

import (
	"math"
	"time"
)

// Transaction represents one row of the import/export trade file.
//
// Numeric fields hold NaN when the cell is empty; Date is the zero time
// when the cell is empty or could not be parsed.
type Transaction struct {
	TransactionID  string
	Country        string
	Product        string
	ImportExport   string
	Quantity       float64
	Value          float64
	Date           time.Time
	Category       string
	Port           string
	CustomsCode    string
	Weight         float64
	ShippingMethod string
	Supplier       string
	Customer       string
	InvoiceNumber  string
	PaymentTerms   string
}

// YearMonth returns the first day (UTC) of the month the transaction falls in.
// ok is false when the date is missing.
func (t Transaction) YearMonth() (time.Time, bool) {
	if t.Date.IsZero() {
		return time.Time{}, false
	}
	return time.Date(t.Date.Year(), t.Date.Month(), 1, 0, 0, 0, 0, time.UTC), true
}

// Missing reports whether a numeric cell was empty.
func Missing(v float64) bool { return math.IsNaN(v) }

// Table is the in-memory trade transaction table.
//
// Records keeps the raw cells in file order so the table can be displayed
// and exported exactly as read; Transactions is the typed view used by the
// aggregations. Both slices have the same length and share indices.
type Table struct {
	Source       string
	Header       []string
	Records      [][]string
	Transactions []Transaction
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Transactions)
}

// Subset returns a table holding the given row indices, in order.
func (t *Table) Subset(idx []int) *Table {
	out := &Table{
		Source:       t.Source,
		Header:       t.Header,
		Records:      make([][]string, 0, len(idx)),
		Transactions: make([]Transaction, 0, len(idx)),
	}
	for _, i := range idx {
		out.Records = append(out.Records, t.Records[i])
		out.Transactions = append(out.Transactions, t.Transactions[i])
	}
	return out
}

// Page returns rows [offset, offset+size) clamped to the table bounds.
func (t *Table) Page(offset, size int) [][]string {
	n := t.Len()
	if offset < 0 || offset >= n || size <= 0 {
		return [][]string{}
	}
	end := offset + size
	if end > n {
		end = n
	}
	return t.Records[offset:end]
}

// Paginate returns the 1-based page of the given size. Pages past the end,
// however large, are empty.
func (t *Table) Paginate(page, size int) [][]string {
	if page < 1 || size <= 0 || page-1 > t.Len()/size {
		return [][]string{}
	}
	return t.Page((page-1)*size, size)
}
