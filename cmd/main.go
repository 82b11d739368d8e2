package main

//
//  @title           tradepulse API
//  @version         1.0
//  @description     Import/export trade dashboard: charts, table and sample of a trade transactions file.
//  @termsOfService  https://github.com/guttosm/tradepulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradepulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        charts
//  @tag.description Rendered dashboard charts
//
//  @tag.name        table
//  @tag.description Raw transaction rows and the random sample
//
//  @tag.name        export
//  @tag.description Spreadsheet export
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/guttosm/tradepulse/docs" // swagger docs
	"github.com/guttosm/tradepulse/internal/logger"
)

// main is the entry point of the tradepulse application.
//
// Commands:
//   - serve:   Starts the dashboard HTTP server.
//   - ingest:  Mirrors a directory of CSV trade files into PostgreSQL.
//   - export:  Writes a static copy of the dashboard to a directory.
//   - summary: Prints the dashboard aggregates as terminal tables.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		logger.L().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
