// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/visitorstats/internal/app/store/snapshot"
	"github.com/dalemusser/visitorstats/internal/app/system/metrics"
	"github.com/dalemusser/visitorstats/internal/app/system/statsclient"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the backends this app talks to.
//
// WAFFLE calls this after configuration is loaded but before Startup. There
// is no database: the backend is the upstream statistics service, reached
// through a pooled HTTP client, with the snapshot cache in front of it.
// Nothing is fetched here; the first request (or readiness probe) does that.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	client, err := statsclient.New(appCfg.UpstreamBaseURL, nil, appCfg.FetchTimeout, logger)
	if err != nil {
		return DBDeps{}, fmt.Errorf("statistics client: %w", err)
	}

	cacheCfg := snapshot.Config{
		Freshness:    appCfg.FreshnessWindow,
		FetchTimeout: appCfg.FetchTimeout,
	}

	var collectors *metrics.Collectors
	if appCfg.MetricsEnabled {
		collectors, err = metrics.New(nil)
		if err != nil {
			return DBDeps{}, fmt.Errorf("metrics: %w", err)
		}
		cacheCfg.Observer = collectors
	}

	cache := snapshot.New(client, cacheCfg, logger)

	logger.Info("statistics backend ready",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("freshness_window", cache.Freshness()),
		zap.Duration("fetch_timeout", appCfg.FetchTimeout),
		zap.Bool("metrics", collectors != nil),
	)

	return DBDeps{
		Client:  client,
		Cache:   cache,
		Metrics: collectors,
	}, nil
}
