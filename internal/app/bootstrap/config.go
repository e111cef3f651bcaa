// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dalemusser/visitorstats/internal/app/store/snapshot"
	"github.com/dalemusser/visitorstats/internal/app/system/apicors"
	"github.com/dalemusser/visitorstats/internal/app/system/flatten"
	"github.com/dalemusser/visitorstats/internal/app/system/statsclient"
	"github.com/dalemusser/visitorstats/internal/app/system/timeouts"
	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "VISITORSTATS"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: upstream_base_url, freshness_window, etc.
//   - Environment variables: VISITORSTATS_UPSTREAM_BASE_URL, VISITORSTATS_FRESHNESS_WINDOW, etc.
//   - Command-line flags: --upstream_base_url, --freshness_window, etc.
var appConfigKeys = []config.AppKey{
	// Upstream statistics service
	{Name: "upstream_base_url", Default: statsclient.DefaultBaseURL, Desc: "Base URL of the statistics service (GET {base}/onlinesInfo)"},
	{Name: "freshness_window", Default: "30s", Desc: "How long a fetched snapshot is served before it is refetched"},
	{Name: "fetch_timeout", Default: "10s", Desc: "Timeout for one upstream fetch"},
	{Name: "request_timeout", Default: "30s", Desc: "Overall timeout for one HTTP request (raised above fetch_timeout)"},

	// Flattening and display
	{Name: "entry_prefix", Default: flatten.DefaultPrefix, Desc: "Prefix of every display identifier"},
	{Name: "root_label", Default: flatten.DefaultRootLabel, Desc: "First path segment of every display identifier (may be empty)"},
	{Name: "traversal_order", Default: flatten.OrderPreOrderName, Desc: "Entry order: 'preorder' or 'reverse-stack'"},
	{Name: "negative_values", Default: flatten.NegativeLegacyName, Desc: "Negative values: 'legacy' (shown as <=0.01) or 'signed'"},
	{Name: "invalid_leaves", Default: flatten.InvalidSkipName, Desc: "Non-numeric statistics: 'skip' or 'reject'"},

	// Layout
	{Name: "layout_file", Default: "", Desc: "YAML report layout (blank uses the built-in layout)"},

	// Charts
	{Name: "chart_width", Default: 800, Desc: "Chart width in pixels"},
	{Name: "chart_height", Default: 400, Desc: "Chart height in pixels"},
	{Name: "histogram_ticks", Default: views.DefaultHistogramTicks, Desc: "Approximate number of histogram thresholds"},
	{Name: "cdf_cutoff", Default: "0.90", Desc: "Cumulative probability above which CDF points are dropped"},

	// Report API
	{Name: "api_cors_origins", Default: "*", Desc: "Comma-separated origins allowed to read /api/report ('*' for any)"},

	// Observability
	{Name: "metrics_enabled", Default: true, Desc: "Serve Prometheus metrics on /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VISITORSTATS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	cutoff, err := strconv.ParseFloat(appValues.String("cdf_cutoff"), 64)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("cdf_cutoff: %w", err)
	}

	appCfg := AppConfig{
		// Upstream
		UpstreamBaseURL: appValues.String("upstream_base_url"),
		FreshnessWindow: appValues.Duration("freshness_window", snapshot.DefaultFreshness),
		FetchTimeout:    appValues.Duration("fetch_timeout", timeouts.DefaultFetch),
		RequestTimeout:  appValues.Duration("request_timeout", timeouts.DefaultRequest),

		// Flattening
		EntryPrefix:    appValues.String("entry_prefix"),
		RootLabel:      appValues.String("root_label"),
		TraversalOrder: appValues.String("traversal_order"),
		NegativeValues: appValues.String("negative_values"),
		InvalidLeaves:  appValues.String("invalid_leaves"),

		LayoutFile: appValues.String("layout_file"),

		// Charts
		ChartWidth:     appValues.Int("chart_width"),
		ChartHeight:    appValues.Int("chart_height"),
		HistogramTicks: appValues.Int("histogram_ticks"),
		CDFCutoff:      cutoff,

		APICORSOrigins: apicors.ParseOrigins(appValues.String("api_cors_origins")),
		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAppConfig(appCfg); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}

func validateAppConfig(appCfg AppConfig) error {
	if err := statsclient.ValidateBaseURL(appCfg.UpstreamBaseURL); err != nil {
		return fmt.Errorf("invalid upstream_base_url: %w", err)
	}
	if _, err := flattener(appCfg); err != nil {
		return err
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"freshness_window", appCfg.FreshnessWindow},
		{"fetch_timeout", appCfg.FetchTimeout},
		{"request_timeout", appCfg.RequestTimeout},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.d)
		}
	}

	if appCfg.ChartWidth <= 0 || appCfg.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", appCfg.ChartWidth, appCfg.ChartHeight)
	}
	if appCfg.HistogramTicks <= 0 {
		return fmt.Errorf("histogram_ticks must be positive, got %d", appCfg.HistogramTicks)
	}
	if appCfg.CDFCutoff <= 0 || appCfg.CDFCutoff > 1 {
		return fmt.Errorf("cdf_cutoff must be in (0, 1], got %v", appCfg.CDFCutoff)
	}
	return nil
}

// flattener builds the configured Flattener.
func flattener(appCfg AppConfig) (flatten.Flattener, error) {
	order, err := flatten.ParseOrder(appCfg.TraversalOrder)
	if err != nil {
		return flatten.Flattener{}, err
	}
	neg, err := flatten.ParseNegativeMode(appCfg.NegativeValues)
	if err != nil {
		return flatten.Flattener{}, err
	}
	invalid, err := flatten.ParseInvalidMode(appCfg.InvalidLeaves)
	if err != nil {
		return flatten.Flattener{}, err
	}
	return flatten.Flattener{
		Prefix:    appCfg.EntryPrefix,
		RootLabel: appCfg.RootLabel,
		Order:     order,
		Policy:    flatten.Policy{Negative: neg, Invalid: invalid},
	}, nil
}
