// internal/app/features/charts/handler.go
package chartsfeature

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	errorsfeature "github.com/dalemusser/visitorstats/internal/app/features/errors"
	"github.com/dalemusser/visitorstats/internal/app/store/snapshot"
	"github.com/dalemusser/visitorstats/internal/app/system/charts"
	"github.com/dalemusser/visitorstats/internal/app/system/timeouts"
	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/visitorstats/internal/domain/models"
	"go.uber.org/zap"
)

// Size limits for the width and height query parameters.
const (
	MinSize = 200
	MaxSize = 4000
)

// drawFunc renders one chart of snap to w.
type drawFunc func(w io.Writer, snap *models.StatsSnapshot, opts charts.Options) error

// Handler serves the report charts as SVG.
type Handler struct {
	Cache   snapshot.Source
	Options charts.Options
	Dist    views.DistributionOptions
	ErrLog  *errorsfeature.ErrorLogger
	Log     *zap.Logger
}

// NewHandler creates a new charts handler.
func NewHandler(cache snapshot.Source, opts charts.Options, dist views.DistributionOptions, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Cache:   cache,
		Options: opts,
		Dist:    dist,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// ServeTimeSeries handles GET /charts/this-month-every-day.svg.
func (h *Handler) ServeTimeSeries(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(w io.Writer, snap *models.StatsSnapshot, opts charts.Options) error {
		return charts.TimeSeries(w, views.ThisMonthEveryDay(snap.Payload), opts)
	})
}

// ServeHistogram handles GET /charts/staying-durations.svg.
func (h *Handler) ServeHistogram(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(w io.Writer, snap *models.StatsSnapshot, opts charts.Options) error {
		d := views.Distribute(views.StayingDurations(snap.Payload), h.Dist)
		return charts.Histogram(w, d.Bins, opts)
	})
}

// ServeCDF handles GET /charts/staying-durations-cdf.svg.
func (h *Handler) ServeCDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(w io.Writer, snap *models.StatsSnapshot, opts charts.Options) error {
		d := views.Distribute(views.StayingDurations(snap.Payload), h.Dist)
		return charts.CDF(w, d.CDF, opts)
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, draw drawFunc) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "chart snapshot")
	defer cancel()

	snap, err := h.Cache.Get(ctx)
	if err != nil {
		h.ErrLog.Log(r, "chart: statistics unavailable", err)
		http.Error(w, "statistics unavailable", http.StatusBadGateway)
		return
	}

	// Render to a buffer so a failed chart never leaves a half-written body.
	var buf bytes.Buffer
	if err := draw(&buf, snap, h.options(r)); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ErrLog.LogWithFields(r, "chart: render failed", err, zap.String("snapshot_id", snap.ID))
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", charts.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Snapshot-Id", snap.ID)
	w.Write(buf.Bytes())
}

// options returns the configured chart options with width and height
// overridden by the query string. Out-of-range values are clamped and
// unparsable ones ignored.
func (h *Handler) options(r *http.Request) charts.Options {
	opts := h.Options
	q := r.URL.Query()
	if v, ok := sizeParam(q.Get("width")); ok {
		opts.Width = v
	}
	if v, ok := sizeParam(q.Get("height")); ok {
		opts.Height = v
	}
	return opts
}

func sizeParam(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return min(max(n, MinSize), MaxSize), true
}
