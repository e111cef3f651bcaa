// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown is invoked during WAFFLE's shutdown phase.
//
// This function is called after the HTTP server has stopped accepting new
// requests and existing requests have been drained (or the shutdown timeout
// has elapsed). The snapshot cache holds nothing that needs flushing; only
// the pooled upstream connections are released.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Client != nil {
		logger.Info("closing idle upstream connections")
		deps.Client.CloseIdleConnections()
	}

	if snap := deps.Cache.Peek(); snap != nil {
		logger.Info("last statistics snapshot",
			zap.String("snapshot_id", snap.ID),
			zap.Time("fetched_at", snap.FetchedAt),
		)
	}

	return nil
}
