// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through backend setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
//
// There is no schema to ensure, so EnsureSchema is left nil.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "visitorstats", // used only for logging/diagnostics
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // validate upstream URL, policies and sizes
	ConnectDB:      ConnectDB,      // build upstream client, metrics and snapshot cache
	Startup:        Startup,        // load shared templates and layout, warm the cache
	BuildHandler:   BuildHandler,   // build the HTTP router + middleware stack
	Shutdown:       Shutdown,       // release upstream connections
}
