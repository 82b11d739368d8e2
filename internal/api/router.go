package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/tradepulse/internal/metrics"
	"github.com/guttosm/tradepulse/internal/middleware"
	"github.com/guttosm/tradepulse/internal/web"
)

// RequestTimeout bounds every request. A dashboard build started by a request
// keeps running after the deadline so later requests can use it.
const RequestTimeout = 30 * time.Second

// RouterOptions carries the optional collaborators of the router.
type RouterOptions struct {
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, Metrics, RateLimiter).
//   - Adds request timeout handling.
//   - Loads the dashboard page template.
//   - Mounts Swagger docs (/swagger/*any) and Prometheus metrics (/metrics).
//   - Configures the page (/) and API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.Metrics(opts.Metrics),
	)
	if opts.RateLimiter != nil {
		router.Use(opts.RateLimiter.Handler())
	}

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	router.SetHTMLTemplate(web.Template())

	// ─── Swagger & metrics ────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	// ─── Dashboard page ───────────────────────────
	router.GET("/", handler.Index)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/charts", handler.ListCharts)
		v1.GET("/charts/:id", handler.GetChart)
		v1.GET("/transactions", handler.ListTransactions)
		v1.GET("/sample", handler.GetSample)
		v1.GET("/export.xlsx", handler.ExportWorkbook)
	}

	return router
}
