// internal/app/features/report/handler.go
package report

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	chartsfeature "github.com/dalemusser/visitorstats/internal/app/features/charts"
	errorsfeature "github.com/dalemusser/visitorstats/internal/app/features/errors"
	"github.com/dalemusser/visitorstats/internal/app/store/snapshot"
	"github.com/dalemusser/visitorstats/internal/app/system/charts"
	"github.com/dalemusser/visitorstats/internal/app/system/flatten"
	"github.com/dalemusser/visitorstats/internal/app/system/jsonutil"
	"github.com/dalemusser/visitorstats/internal/app/system/layout"
	"github.com/dalemusser/visitorstats/internal/app/system/statsclient"
	"github.com/dalemusser/visitorstats/internal/app/system/timeouts"
	"github.com/dalemusser/visitorstats/internal/app/system/viewdata"
	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/visitorstats/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrNoStats is returned when a snapshot carries no onlinesStats tree.
var ErrNoStats = errors.New("report: snapshot has no onlinesStats")

// Config holds what the report handler needs besides logging.
type Config struct {
	Cache     snapshot.Source
	Flattener flatten.Flattener
	Layout    *layout.Layout
	Charts    charts.Options
	Dist      views.DistributionOptions
	Pages     *errorsfeature.Handler

	// Now is the clock used for relative times; nil means time.Now.
	Now func() time.Time
}

// Handler serves the report page and its JSON views.
type Handler struct {
	cfg    Config
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

// NewHandler creates a new report handler.
func NewHandler(cfg Config, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	if cfg.Layout == nil {
		cfg.Layout = &layout.Layout{}
	}
	if cfg.Pages == nil {
		cfg.Pages = errorsfeature.NewHandler()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Handler{cfg: cfg, ErrLog: errLog, Log: logger}
}

// ServePage handles GET / - the report page.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrPage(w, r)
	if !ok {
		return
	}

	vm, err := h.buildPage(r, snap)
	if err != nil {
		h.ErrLog.LogWithFields(r, "report: build page failed", err, zap.String("snapshot_id", snap.ID))
		h.cfg.Pages.Unavailable(w, r, "statistics could not be read")
		return
	}

	templates.Render(w, r, "report/index", vm)
}

// ServeEntries handles GET /api/report/entries.
func (h *Handler) ServeEntries(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrJSON(w, r)
	if !ok {
		return
	}

	res, err := h.flatten(r, snap)
	if err != nil {
		h.ErrLog.LogWithFields(r, "report: flatten failed", err, zap.String("snapshot_id", snap.ID))
		jsonutil.BadGateway(w, "statistics could not be read")
		return
	}

	jsonutil.OK(w, EntriesResponse{
		SnapshotID: snap.ID,
		ComputedAt: snap.Payload.ComputedAt,
		FetchedAt:  snap.FetchedAt,
		Entries:    res.Entries,
		Skipped:    res.Skipped,
	})
}

// ServeTimeSeries handles GET /api/report/timeseries.
func (h *Handler) ServeTimeSeries(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrJSON(w, r)
	if !ok {
		return
	}

	days := views.ThisMonthEveryDay(snap.Payload)
	out := make([]DayJSON, len(days))
	for i, d := range days {
		out[i] = DayJSON{From: d.From, To: d.To, Counts: d.Counts, Prompt: views.PromptText(d)}
	}

	jsonutil.OK(w, TimeSeriesResponse{
		SnapshotID: snap.ID,
		ComputedAt: snap.Payload.ComputedAt,
		Days:       out,
	})
}

// ServeDurations handles GET /api/report/durations.
func (h *Handler) ServeDurations(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshotOrJSON(w, r)
	if !ok {
		return
	}

	jsonutil.OK(w, DurationsResponse{
		SnapshotID:   snap.ID,
		ComputedAt:   snap.Payload.ComputedAt,
		Distribution: views.Distribute(views.StayingDurations(snap.Payload), h.cfg.Dist),
	})
}

func (h *Handler) snapshot(r *http.Request) (*models.StatsSnapshot, error) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "report snapshot")
	defer cancel()
	return h.cfg.Cache.Get(ctx)
}

func (h *Handler) snapshotOrPage(w http.ResponseWriter, r *http.Request) (*models.StatsSnapshot, bool) {
	snap, err := h.snapshot(r)
	if err != nil {
		h.ErrLog.Log(r, "report: statistics unavailable", err)
		h.cfg.Pages.Unavailable(w, r, unavailableDetail(err))
		return nil, false
	}
	return snap, true
}

func (h *Handler) snapshotOrJSON(w http.ResponseWriter, r *http.Request) (*models.StatsSnapshot, bool) {
	snap, err := h.snapshot(r)
	if err != nil {
		h.ErrLog.Log(r, "report: statistics unavailable", err)
		jsonutil.BadGateway(w, unavailableDetail(err))
		return nil, false
	}
	return snap, true
}

// unavailableDetail is the client-facing reason; the full error is only logged.
func unavailableDetail(err error) string {
	var fe *statsclient.FetchError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return "statistics service did not answer in time"
	case errors.As(err, &fe) && fe.Err == nil && fe.StatusCode != 0:
		return fmt.Sprintf("statistics service returned HTTP %d", fe.StatusCode)
	case errors.As(err, &fe) && fe.StatusCode != 0:
		return "statistics service returned an unreadable response"
	default:
		return "statistics service unavailable"
	}
}

// flatten turns the snapshot's onlinesStats into display entries and logs
// any leaves that were skipped.
func (h *Handler) flatten(r *http.Request, snap *models.StatsSnapshot) (flatten.Result, error) {
	if snap.Payload == nil || snap.Payload.OnlinesStats == nil {
		return flatten.Result{}, ErrNoStats
	}
	res, err := h.cfg.Flattener.Flatten(snap.Payload.OnlinesStats)
	if err != nil {
		return flatten.Result{}, err
	}
	if len(res.Skipped) > 0 {
		h.Log.Warn("report: skipped non-numeric statistics",
			zap.String("snapshot_id", snap.ID),
			zap.Strings("paths", res.Skipped),
			zap.String("path", r.URL.Path),
		)
	}
	return res, nil
}

// buildPage assembles the page view model from snap.
func (h *Handler) buildPage(r *http.Request, snap *models.StatsSnapshot) (PageVM, error) {
	res, err := h.flatten(r, snap)
	if err != nil {
		return PageVM{}, err
	}

	computedAt := snap.Payload.ComputedAt
	title := h.cfg.Layout.Title
	if title == "" {
		title = viewdata.SiteName()
	}

	vm := PageVM{
		BaseVM:      viewdata.NewBaseVM(r, title),
		Description: Description(computedAt),
		SnapshotID:  snap.ID,
		Panels:      h.cfg.Layout.Bind(res.Entries),
		TimeSeries:  h.timeSeriesVM(snap),
		Durations:   h.durationsVM(snap),
	}
	if !computedAt.IsZero() {
		vm.ComputedAgo = RelTime(computedAt.Time, h.cfg.Now())
	}
	return vm, nil
}

func (h *Handler) timeSeriesVM(snap *models.StatsSnapshot) TimeSeriesVM {
	opts := h.chartOptions()
	days := views.ThisMonthEveryDay(snap.Payload)

	vm := TimeSeriesVM{
		ChartURL:   chartsfeature.TimeSeriesPath,
		PromptID:   TimeSeriesPromptID,
		Width:      opts.Width,
		Height:     opts.Height,
		Left:       percent(opts.Margin.Left, opts.Width),
		Top:        percent(opts.Margin.Top, opts.Height),
		PlotWidth:  percent(opts.Width-opts.Margin.Left-opts.Margin.Right, opts.Width),
		PlotHeight: percent(opts.Height-opts.Margin.Top-opts.Margin.Bottom, opts.Height),
		Days:       make([]DayVM, len(days)),
	}
	for i, d := range days {
		vm.Days[i] = DayVM{Counts: d.Counts, Prompt: views.PromptText(d)}
	}
	return vm
}

func (h *Handler) durationsVM(snap *models.StatsSnapshot) DurationsVM {
	opts := h.chartOptions()
	d := views.Distribute(views.StayingDurations(snap.Payload), h.cfg.Dist)

	return DurationsVM{
		HistogramURL: chartsfeature.HistogramPath,
		CDFURL:       chartsfeature.CDFPath,
		Width:        opts.Width,
		Height:       opts.Height,
		Samples:      humanize.Comma(int64(len(d.Minutes))),
		Median:       humanize.FtoaWithDigits(d.Median, 2),
		UpperBound:   humanize.FtoaWithDigits(d.UpperBound, 2),
		Excluded:     d.Excluded,
	}
}

func (h *Handler) chartOptions() charts.Options {
	opts := h.cfg.Charts
	def := charts.DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Margin == (charts.Margin{}) {
		opts.Margin = def.Margin
	}
	return opts
}

// Description is the report header line.
func Description(computedAt models.Timestamp) string {
	return fmt.Sprintf("这份报告生成于%s．", computedAt.ISO())
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
