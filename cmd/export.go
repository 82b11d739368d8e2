package main

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/tradepulse/config"
	"github.com/guttosm/tradepulse/internal/app"
	"github.com/guttosm/tradepulse/internal/export"
	"github.com/guttosm/tradepulse/internal/logger"
	"github.com/guttosm/tradepulse/internal/metrics"
)

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a static copy of the dashboard",
		Long: `Builds the dashboard once and writes index.html, the chart files and the XLSX
workbook into --out. Nothing is written when the data file is missing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout stays free for scripting
			logger.SetOutput(cmd.ErrOrStderr())

			src, cleanup, err := app.NewSource(config.AppConfig)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := app.NewDashboardService(config.AppConfig, src, metrics.New())
			d, err := svc.Build(cmd.Context())
			if err != nil {
				return err
			}
			return export.WriteSite(out, d)
		},
	}
	cmd.Flags().StringVar(&out, "out", "./dist", "Output directory")
	return cmd
}
