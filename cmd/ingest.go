package main

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/tradepulse/config"
	"github.com/guttosm/tradepulse/internal/app"
	"github.com/guttosm/tradepulse/internal/ingestion"
	"github.com/guttosm/tradepulse/internal/logger"
)

func ingestCmd() *cobra.Command {
	var (
		dir      string
		parallel int
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Mirror CSV trade files into PostgreSQL",
		Long: `Loads every *.csv file of a directory into the transactions table. Files already
listed in the ingestion log are skipped unless --force is given, which deletes their rows
and loads them again. Serve with DATA_SOURCE=postgres to build the dashboard from the mirror.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.L().Info().Str("dir", dir).Msg("running ingestion")

			// Direct DB connection for ingestion
			db, err := app.OpenMirror(config.AppConfig)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			opts := ingestion.ParseOptions{Delimiter: config.AppConfig.Data.Delimiter}
			if err := ingestion.ProcessDirectory(cmd.Context(), dir, db, opts, parallel, force); err != nil {
				return err
			}
			logger.L().Info().Msg("ingestion completed successfully")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./data/input", "Directory with .csv files")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	cmd.Flags().BoolVar(&force, "force", false, "Reprocess files even if already ingested (deletes their existing rows)")
	return cmd
}
