// internal/app/features/errors/templates.go
package errors

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Page templates, by their {{define}} names.
const (
	notFoundPage    = "errors/not_found"
	internalPage    = "errors/internal"
	unavailablePage = "errors/unavailable"
)

//go:embed templates/*.gohtml
var pagesFS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "errors",
		FS:       pagesFS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
