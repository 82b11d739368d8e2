package main

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/tradepulse/config"
	"github.com/guttosm/tradepulse/internal/logger"
)

// newRootCmd builds the command tree. Configuration and the logger are
// initialized once before any subcommand runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradepulse",
		Short: "Import/export trade dashboard",
		Long: `tradepulse loads a trade transactions file, draws a reproducible random sample
and renders a fixed set of charts, served as a web dashboard or exported as files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Load configuration from environment or .env file
			config.LoadConfig()
			// Initialize JSON logger
			logger.Init()
		},
	}

	root.AddCommand(serveCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(summaryCmd())

	return root
}
