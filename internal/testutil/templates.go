package testutil

import (
	"sync"

	"github.com/dalemusser/visitorstats/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var (
	engineOnce sync.Once
	engineErr  error
)

// bootEngine registers the page head and foot and installs a production-mode
// engine. Feature templates register themselves in init(), so a test sees
// the pages of every package it imports (report pulls in the error pages).
func bootEngine() error {
	engineOnce.Do(func() {
		resources.LoadSharedTemplates()

		eng := templates.New(false)
		if engineErr = eng.Boot(zap.NewNop()); engineErr != nil {
			return
		}
		templates.UseEngine(eng, zap.NewNop())
	})
	return engineErr
}

// MustBootTemplates makes templates.Render usable in handler tests. Only the
// first call per test binary boots the engine.
func MustBootTemplates(t interface{ Fatalf(string, ...any) }) {
	if err := bootEngine(); err != nil {
		t.Fatalf("boot templates: %v", err)
	}
}
