// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/visitorstats/internal/app/resources"
	"github.com/dalemusser/visitorstats/internal/app/system/layout"
	"github.com/dalemusser/visitorstats/internal/app/system/timeouts"
	"github.com/dalemusser/visitorstats/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// reportLayout is the layout loaded in Startup and used by BuildHandler.
var reportLayout *layout.Layout

// Startup runs once after ConnectDB, before the HTTP handler is built and
// requests are served.
//
// It registers the shared templates, applies the configured timeouts,
// loads the report layout and warms the snapshot cache. A failed warm-up
// is logged, not fatal: the page shows "statistics unavailable" until the
// service answers.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{
		Fetch:   appCfg.FetchTimeout,
		Request: appCfg.RequestTimeout,
	})

	lay, err := loadLayout(appCfg.LayoutFile)
	if err != nil {
		logger.Error("failed to load report layout", zap.String("file", appCfg.LayoutFile), zap.Error(err))
		return err
	}
	reportLayout = lay
	viewdata.Init(lay.Title, lay.Footer)

	logger.Info("report layout loaded",
		zap.String("file", appCfg.LayoutFile),
		zap.String("title", lay.Title),
		zap.Int("panels", len(lay.Panels)),
	)

	warmCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Fetch(), logger, "warm snapshot cache")
	defer cancel()
	if snap, err := deps.Cache.Get(warmCtx); err != nil {
		logger.Warn("initial statistics fetch failed", zap.Error(err))
	} else {
		logger.Info("initial statistics fetched", zap.String("snapshot_id", snap.ID))
	}

	return nil
}

func loadLayout(path string) (*layout.Layout, error) {
	if path == "" {
		return layout.Default()
	}
	lay, err := layout.Load(path)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return lay, nil
}
