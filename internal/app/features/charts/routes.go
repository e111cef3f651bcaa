// internal/app/features/charts/routes.go
package chartsfeature

import (
	"github.com/go-chi/chi/v5"
)

// Chart URLs as mounted by bootstrap under MountPath.
const (
	MountPath      = "/charts"
	TimeSeriesPath = MountPath + "/this-month-every-day.svg"
	HistogramPath  = MountPath + "/staying-durations.svg"
	CDFPath        = MountPath + "/staying-durations-cdf.svg"
)

// Routes returns the router for the charts feature.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/this-month-every-day.svg", h.ServeTimeSeries)
	r.Get("/staying-durations.svg", h.ServeHistogram)
	r.Get("/staying-durations-cdf.svg", h.ServeCDF)

	return r
}
