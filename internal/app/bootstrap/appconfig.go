// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//
// AppConfig is where everything specific to the report lives: the upstream
// statistics service, the cache window, display policies and chart sizes.
type AppConfig struct {
	// Upstream statistics service
	UpstreamBaseURL string        // Base URL; the service is queried at {base}/onlinesInfo
	FreshnessWindow time.Duration // Maximum snapshot age that is still served (default: 30s)
	FetchTimeout    time.Duration // Bound on one upstream fetch (default: 10s)
	RequestTimeout  time.Duration // Overall budget for one HTTP request (default: 30s)

	// Flattening and display
	EntryPrefix    string // Display identifier prefix (default: stat-value-)
	RootLabel      string // First path segment of every identifier (default: onlineStats)
	TraversalOrder string // "preorder" or "reverse-stack"
	NegativeValues string // "legacy" or "signed"
	InvalidLeaves  string // "skip" or "reject"

	// Layout file (YAML). Empty means the embedded default layout.
	LayoutFile string

	// Charts
	ChartWidth     int     // SVG width in pixels (default: 800)
	ChartHeight    int     // SVG height in pixels (default: 400)
	HistogramTicks int     // Approximate histogram threshold count (default: 40)
	CDFCutoff      float64 // CDF points above this cumulative probability are dropped (default: 0.90)

	// Report API
	APICORSOrigins []string // Origins allowed to read /api/report ("*" for any)

	// Observability
	MetricsEnabled bool // Serve Prometheus metrics on /metrics
}
