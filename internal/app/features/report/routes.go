// internal/app/features/report/routes.go
package report

import (
	"github.com/go-chi/chi/v5"
)

// APIMountPath is where bootstrap mounts APIRoutes.
const APIMountPath = "/api/report"

// Routes returns the router for the report page.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePage)
	return r
}

// APIRoutes returns the router for the report's JSON views.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/entries", h.ServeEntries)
	r.Get("/timeseries", h.ServeTimeSeries)
	r.Get("/durations", h.ServeDurations)

	return r
}
