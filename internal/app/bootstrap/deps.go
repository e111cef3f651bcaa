// internal/app/bootstrap/deps.go
package bootstrap

import (
	"github.com/dalemusser/visitorstats/internal/app/store/snapshot"
	"github.com/dalemusser/visitorstats/internal/app/system/metrics"
	"github.com/dalemusser/visitorstats/internal/app/system/statsclient"
)

// DBDeps holds the backend dependencies for this WAFFLE app.
//
// There is no database: the only backend is the upstream statistics
// service and the in-process snapshot cache in front of it. The struct is
// created in ConnectDB and passed to Startup, BuildHandler, and Shutdown.
type DBDeps struct {
	// Upstream statistics client
	Client *statsclient.Client

	// Process-wide snapshot cache shared by every handler
	Cache *snapshot.Cache

	// Prometheus collectors; nil when metrics are disabled
	Metrics *metrics.Collectors
}
