package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/tradepulse/internal/domain/models"
)

// Column names as they appear in the trade file header.
const (
	colTransactionID  = "Transaction_ID"
	colCountry        = "Country"
	colProduct        = "Product"
	colImportExport   = "Import_Export"
	colQuantity       = "Quantity"
	colValue          = "Value"
	colDate           = "Date"
	colCategory       = "Category"
	colPort           = "Port"
	colCustomsCode    = "Customs_Code"
	colWeight         = "Weight"
	colShippingMethod = "Shipping_Method"
	colSupplier       = "Supplier"
	colCustomer       = "Customer"
	colInvoiceNumber  = "Invoice_Number"
	colPaymentTerms   = "Payment_Terms"
)

// CanonicalHeader is the column order used when a table is rebuilt from the
// Postgres mirror.
var CanonicalHeader = []string{
	colTransactionID, colCountry, colProduct, colImportExport, colQuantity, colValue,
	colDate, colCategory, colPort, colCustomsCode, colWeight, colShippingMethod,
	colSupplier, colCustomer, colInvoiceNumber, colPaymentTerms,
}

// requiredColumns must be present in the header; every chart reads at least one of them.
var requiredColumns = []string{
	colCategory, colValue, colCountry, colDate, colImportExport,
	colProduct, colWeight, colShippingMethod, colPaymentTerms, colQuantity,
}

// DefaultDateLayouts are tried in order; the first one that parses wins.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01/02/2006",
	"2006/01/02",
	time.RFC3339,
}

// ParseOptions controls how a delimited trade file is read.
type ParseOptions struct {
	Delimiter   rune
	DateLayouts []string
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if len(o.DateLayouts) == 0 {
		o.DateLayouts = DefaultDateLayouts
	}
	return o
}

// decoder streams rows of a trade file, locating columns by header name.
type decoder struct {
	r      *csv.Reader
	opts   ParseOptions
	header []string
	index  map[string]int
	line   int
}

// newDecoder reads and validates the header. Column order is free, but every
// required column must be present exactly by name.
func newDecoder(r io.Reader, opts ParseOptions) (*decoder, error) {
	opts = opts.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // checked explicitly against the header
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		header[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return &decoder{r: cr, opts: opts, header: header, index: index, line: 1}, nil
}

// next returns the raw record and its typed view. It returns io.EOF at the end of input.
func (d *decoder) next() ([]string, models.Transaction, error) {
	rec, err := d.r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, models.Transaction{}, io.EOF
		}
		return nil, models.Transaction{}, fmt.Errorf("read line after %d: %w", d.line, err)
	}
	d.line++

	if len(rec) != len(d.header) {
		return nil, models.Transaction{}, fmt.Errorf("invalid column count on line %d: expected %d got %d", d.line, len(d.header), len(rec))
	}

	tr, err := d.recordToTransaction(rec)
	if err != nil {
		return nil, models.Transaction{}, fmt.Errorf("line %d: %w", d.line, err)
	}
	return rec, tr, nil
}

func (d *decoder) cell(rec []string, col string) string {
	i, ok := d.index[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// recordToTransaction is strict about numeric formats but tolerates empty
// cells (NaN) and unparseable dates (treated as missing).
func (d *decoder) recordToTransaction(rec []string) (models.Transaction, error) {
	t := models.Transaction{
		TransactionID:  d.cell(rec, colTransactionID),
		Country:        d.cell(rec, colCountry),
		Product:        d.cell(rec, colProduct),
		ImportExport:   d.cell(rec, colImportExport),
		Category:       d.cell(rec, colCategory),
		Port:           d.cell(rec, colPort),
		CustomsCode:    d.cell(rec, colCustomsCode),
		ShippingMethod: d.cell(rec, colShippingMethod),
		Supplier:       d.cell(rec, colSupplier),
		Customer:       d.cell(rec, colCustomer),
		InvoiceNumber:  d.cell(rec, colInvoiceNumber),
		PaymentTerms:   d.cell(rec, colPaymentTerms),
		Date:           parseDate(d.cell(rec, colDate), d.opts.DateLayouts),
	}

	var err error
	if t.Quantity, err = parseNumber(d.cell(rec, colQuantity), d.opts.Delimiter); err != nil {
		return t, fmt.Errorf("invalid %s: %w", colQuantity, err)
	}
	if t.Value, err = parseNumber(d.cell(rec, colValue), d.opts.Delimiter); err != nil {
		return t, fmt.Errorf("invalid %s: %w", colValue, err)
	}
	if t.Weight, err = parseNumber(d.cell(rec, colWeight), d.opts.Delimiter); err != nil {
		return t, fmt.Errorf("invalid %s: %w", colWeight, err)
	}
	return t, nil
}

// parseNumber maps an empty cell to NaN. Files separated by ';' may use a
// comma as decimal separator.
func parseNumber(s string, delim rune) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	if delim == ';' {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

// parseDate returns the zero time when s is empty or matches none of the layouts.
func parseDate(s string, layouts []string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, l := range layouts {
		if d, err := time.Parse(l, s); err == nil {
			return d
		}
	}
	return time.Time{}
}

// ParseTable reads a whole trade file into memory.
func ParseTable(ctx context.Context, r io.Reader, source string, opts ParseOptions) (*models.Table, error) {
	dec, err := newDecoder(r, opts)
	if err != nil {
		return nil, err
	}

	table := &models.Table{Source: source, Header: dec.header}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, tr, err := dec.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, rec)
		table.Transactions = append(table.Transactions, tr)
	}
	return table, nil
}
