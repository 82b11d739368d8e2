package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/guttosm/tradepulse/config"
	"github.com/guttosm/tradepulse/internal/analytics"
	"github.com/guttosm/tradepulse/internal/app"
	"github.com/guttosm/tradepulse/internal/domain/models"
	"github.com/guttosm/tradepulse/internal/logger"
)

const summaryTopProducts = 10

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard aggregates as tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.SetOutput(cmd.ErrOrStderr())

			src, cleanup, err := app.NewSource(config.AppConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

// writeSummary prints the textual aggregates behind the charts.
func writeSummary(w io.Writer, t *models.Table) {
	_, _ = fmt.Fprintf(w, "%s: %d transactions\n", t.Source, t.Len())

	flows := analytics.ValueCounts(t, analytics.ImportExport)
	pct := analytics.Percentages(flows)
	section(w, "Import vs Export", []string{"Import_Export", "Count", "Share"}, func(tw *tablewriter.Table) {
		for i, c := range flows {
			tw.Append([]string{c.Key, strconv.Itoa(c.N), fmt.Sprintf("%.1f%%", pct[i])})
		}
	})

	section(w, "Transactions by Country", []string{"Country", "Count"}, func(tw *tablewriter.Table) {
		for _, c := range analytics.ValueCounts(t, analytics.Country) {
			tw.Append([]string{c.Key, strconv.Itoa(c.N)})
		}
	})

	section(w, "Top 10 Products by Transaction Value", []string{"Product", "Value"}, func(tw *tablewriter.Table) {
		for _, s := range analytics.TopN(analytics.SumBy(t, analytics.Product, analytics.Value), summaryTopProducts) {
			tw.Append([]string{s.Key, formatAmount(s.Sum)})
		}
	})

	section(w, "Transaction Value by Payment Terms", []string{"Payment_Terms", "Value"}, func(tw *tablewriter.Table) {
		for _, s := range analytics.SumBy(t, analytics.PaymentTerms, analytics.Value) {
			tw.Append([]string{s.Key, formatAmount(s.Sum)})
		}
	})

	ct := analytics.CrossTabulate(t, analytics.Country, analytics.ImportExport)
	section(w, "Import/Export by Country", append([]string{"Country"}, ct.Cols...), func(tw *tablewriter.Table) {
		for i, row := range ct.Rows {
			line := []string{row}
			for _, n := range ct.Cells[i] {
				line = append(line, strconv.Itoa(n))
			}
			tw.Append(line)
		}
	})

	section(w, "Transactions Over Time", []string{"Month", "Count"}, func(tw *tablewriter.Table) {
		for _, m := range analytics.MonthlyCounts(t) {
			tw.Append([]string{m.Month.Format("2006-01"), strconv.Itoa(m.N)})
		}
	})
}

func section(w io.Writer, title string, header []string, fill func(tw *tablewriter.Table)) {
	_, _ = fmt.Fprintf(w, "\n%s\n", title)
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetAutoFormatHeaders(false)
	fill(tw)
	tw.Render()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
