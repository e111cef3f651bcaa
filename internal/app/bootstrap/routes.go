// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	chartsfeature "github.com/dalemusser/visitorstats/internal/app/features/charts"
	errorsfeature "github.com/dalemusser/visitorstats/internal/app/features/errors"
	healthfeature "github.com/dalemusser/visitorstats/internal/app/features/health"
	reportfeature "github.com/dalemusser/visitorstats/internal/app/features/report"
	appresources "github.com/dalemusser/visitorstats/internal/app/resources"
	"github.com/dalemusser/visitorstats/internal/app/system/apicors"
	"github.com/dalemusser/visitorstats/internal/app/system/charts"
	"github.com/dalemusser/visitorstats/internal/app/system/timeouts"
	"github.com/dalemusser/visitorstats/internal/app/system/viewdata"
	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup and Startup have
// completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the statistics client, snapshot cache and metrics
//   - logger: the fully configured zap.Logger for this app
//
// Route map:
//   - /                      report page
//   - /api/report/*          JSON views (permissive CORS, read-only)
//   - /charts/*.svg          chart images
//   - /health, /ready, ...   probes
//   - /metrics               Prometheus (when enabled)
//   - /assets/*              embedded CSS and JS
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	fl, err := flattener(appCfg)
	if err != nil {
		return nil, err
	}

	// Create error logger and error pages for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	chartOpts := charts.Options{
		Width:  appCfg.ChartWidth,
		Height: appCfg.ChartHeight,
		Margin: charts.DefaultMargin,
	}
	dist := views.DistributionOptions{
		Ticks:  appCfg.HistogramTicks,
		Cutoff: appCfg.CDFCutoff,
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	// Request timeout middleware: prevents requests from hanging indefinitely.
	// It is always longer than the upstream fetch timeout.
	r.Use(chimw.Timeout(timeouts.Request()))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Request counts and latency per route (no-op when metrics are disabled).
	r.Use(deps.Metrics.Middleware)

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health checks
	healthHandler := healthfeature.NewHandler(deps.Cache, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Prometheus metrics
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	// Embedded CSS and JS
	r.Handle(viewdata.AssetsPrefix+"/*", appresources.AssetsHandler(viewdata.AssetsPrefix))

	// Charts
	chartsHandler := chartsfeature.NewHandler(deps.Cache, chartOpts, dist, errLog, logger)
	r.Mount(chartsfeature.MountPath, chartsfeature.Routes(chartsHandler))

	// Report page and JSON views
	reportHandler := reportfeature.NewHandler(reportfeature.Config{
		Cache:     deps.Cache,
		Flattener: fl,
		Layout:    reportLayout,
		Charts:    chartOpts,
		Dist:      dist,
		Pages:     errorsHandler,
	}, errLog, logger)

	r.Route(reportfeature.APIMountPath, func(r chi.Router) {
		r.Use(apicors.Middleware(appCfg.APICORSOrigins...))
		r.Mount("/", reportfeature.APIRoutes(reportHandler))
	})
	r.Mount("/", reportfeature.Routes(reportHandler))

	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
