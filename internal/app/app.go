package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradepulse/config"
	"github.com/guttosm/tradepulse/internal/api"
	"github.com/guttosm/tradepulse/internal/ingestion"
	"github.com/guttosm/tradepulse/internal/logger"
	"github.com/guttosm/tradepulse/internal/metrics"
	"github.com/guttosm/tradepulse/internal/middleware"
	"github.com/guttosm/tradepulse/internal/service"
	"github.com/guttosm/tradepulse/internal/storage"
)

// NewSource returns the configured transaction source and a cleanup function.
//
// Behavior:
//   - DATA_SOURCE=csv reads DATA_FILE on every fingerprint change; no connection is opened.
//   - DATA_SOURCE=postgres connects through postgresOpener and reads the mirror filled by `ingest`.
func NewSource(cfg config.Config) (ingestion.Source, func(), error) {
	switch cfg.Data.Source {
	case config.SourcePostgres:
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		src := ingestion.NewPostgresSource(storage.NewTransactionsRepository(db))
		return src, func() { _ = db.Close() }, nil
	case config.SourceCSV, "":
		src := ingestion.NewCSVSource(cfg.Data.File, ingestion.ParseOptions{Delimiter: cfg.Data.Delimiter})
		return src, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.Data.Source)
	}
}

// NewDashboardService wires a DashboardService over the given source using cfg.
func NewDashboardService(cfg config.Config, src ingestion.Source, m *metrics.Metrics) service.DashboardService {
	return service.NewDashboardService(src, service.Options{
		SampleSize: cfg.Data.SampleSize,
		SampleSeed: cfg.Data.SampleSeed,
		Parallel:   cfg.Render.Parallel,
	}, m)
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the configured source (CSV file or PostgreSQL mirror).
//   - Initializes the dashboard service (build, cache, sample).
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with the page, API, metrics and swagger routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// A missing data file is not an error here: the page reports it per request.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	src, cleanup, err := NewSource(cfg)
	if err != nil {
		return nil, nil, err
	}

	m := metrics.New()
	svc := NewDashboardService(cfg, src, m)

	// Initialize HTTP handler layer (service to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		Metrics:     m,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, m),
	})

	// Register health and readiness probes
	api.NewHealthHandler(svc.Ready).Register(router)

	logger.L().Info().Str("source", src.Name()).Int("sample_size", cfg.Data.SampleSize).Int("render_parallel", cfg.Render.Parallel).Msg("app initialized")

	return router, cleanup, nil
}

// OpenMirror connects to PostgreSQL for the ingest command.
func OpenMirror(cfg config.Config) (*sql.DB, error) {
	return postgresOpener(cfg)
}
