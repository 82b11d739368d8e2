// Package export writes a built dashboard to files: an XLSX workbook and a
// static copy of the dashboard page.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/tradepulse/internal/analytics"
	"github.com/guttosm/tradepulse/internal/domain/models"
)

// Sheet names of the workbook, in order.
const (
	SheetTransactions = "Transactions"
	SheetSample       = "Sample"
	SheetCountries    = "By Country"
	SheetFlows        = "Imports vs Exports"
	SheetCountryFlow  = "Country x Flow"
	SheetTopProducts  = "Top Products"
	SheetPaymentTerms = "Payment Terms"
	SheetMonthly      = "Monthly"
)

// numericColumns are written as numbers when the cell parses.
var numericColumns = map[string]bool{"Quantity": true, "Value": true, "Weight": true}

// WriteWorkbook writes the table, the sample and the count tables behind the
// charts as an XLSX workbook.
func WriteWorkbook(w io.Writer, d *models.Dashboard) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return err
	}
	if err := writeTable(f, SheetTransactions, d.Table); err != nil {
		return err
	}
	if err := writeTable(f, SheetSample, d.Sample); err != nil {
		return err
	}

	t := d.Table
	counts := analytics.ValueCounts(t, analytics.ImportExport)
	pct := analytics.Percentages(counts)
	flows := make([][]any, len(counts))
	for i, c := range counts {
		flows[i] = []any{c.Key, c.N, pct[i]}
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetCountries, []any{"Country", "Transactions"}, countRows(analytics.ValueCounts(t, analytics.Country))},
		{SheetFlows, []any{"Import_Export", "Transactions", "Percent"}, flows},
		{SheetCountryFlow, crossTabHeader(analytics.CrossTabulate(t, analytics.Country, analytics.ImportExport)), crossTabRows(analytics.CrossTabulate(t, analytics.Country, analytics.ImportExport))},
		{SheetTopProducts, []any{"Product", "Value"}, sumRows(analytics.TopN(analytics.SumBy(t, analytics.Product, analytics.Value), 10))},
		{SheetPaymentTerms, []any{"Payment_Terms", "Transactions"}, countRows(analytics.ValueCounts(t, analytics.PaymentTerms))},
		{SheetMonthly, []any{"YearMonth", "Transactions"}, monthRows(analytics.MonthlyCounts(t))},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t *models.Table) error {
	header := make([]any, len(t.Header))
	numeric := make([]bool, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
		numeric[i] = numericColumns[h]
	}
	rows := make([][]any, len(t.Records))
	for r, rec := range t.Records {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = cell
			if i < len(numeric) && numeric[i] {
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					row[i] = v
				}
			}
		}
		rows[r] = row
	}
	return writeSheet(f, sheet, header, rows)
}

// writeSheet streams a header row and the data rows into a sheet, creating
// the sheet when needed.
func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", sheet, err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("sheet %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
	}
	return sw.Flush()
}

func countRows(counts []models.Count) [][]any {
	out := make([][]any, len(counts))
	for i, c := range counts {
		out[i] = []any{c.Key, c.N}
	}
	return out
}

func sumRows(sums []models.GroupSum) [][]any {
	out := make([][]any, len(sums))
	for i, s := range sums {
		out[i] = []any{s.Key, s.Sum}
	}
	return out
}

func monthRows(months []models.MonthCount) [][]any {
	out := make([][]any, len(months))
	for i, m := range months {
		out[i] = []any{m.Month.Format("2006-01"), m.N}
	}
	return out
}

func crossTabHeader(ct models.CrossTab) []any {
	h := []any{"Country"}
	for _, c := range ct.Cols {
		h = append(h, c)
	}
	return h
}

func crossTabRows(ct models.CrossTab) [][]any {
	out := make([][]any, len(ct.Rows))
	for i, r := range ct.Rows {
		row := []any{r}
		for _, n := range ct.Cells[i] {
			row = append(row, n)
		}
		out[i] = row
	}
	return out
}
