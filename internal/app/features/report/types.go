// internal/app/features/report/types.go
package report

import (
	"time"

	"github.com/dalemusser/visitorstats/internal/app/system/layout"
	"github.com/dalemusser/visitorstats/internal/app/system/viewdata"
	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/visitorstats/internal/domain/models"
)

// TimeSeriesPromptID is the element that shows the hovered day's prompt.
const TimeSeriesPromptID = "ts-thisMonthEveryDay-prompt"

// PageVM is the view model for the report page.
type PageVM struct {
	viewdata.BaseVM

	Description string // 这份报告生成于{ISO}．
	ComputedAgo string
	SnapshotID  string

	Panels     []layout.BoundPanel
	TimeSeries TimeSeriesVM
	Durations  DurationsVM
}

// TimeSeriesVM describes the daily visitors chart and its hover columns.
type TimeSeriesVM struct {
	ChartURL string
	PromptID string
	Width    int
	Height   int

	// Plot area inset, in percent of the chart size, for the hover overlay.
	Left, Top, PlotWidth, PlotHeight float64

	Days []DayVM
}

// DayVM is one hover column.
type DayVM struct {
	Counts int64
	Prompt string
}

// DurationsVM describes the staying-duration charts.
type DurationsVM struct {
	HistogramURL string
	CDFURL       string
	Width        int
	Height       int

	Samples    string
	Median     string
	UpperBound string
	Excluded   int
}

// EntriesResponse is the body of GET /api/report/entries.
type EntriesResponse struct {
	SnapshotID string                `json:"snapshotId"`
	ComputedAt models.Timestamp      `json:"computedAt"`
	FetchedAt  time.Time             `json:"fetchedAt"`
	Entries    []models.DisplayEntry `json:"entries"`
	Skipped    []string              `json:"skipped,omitempty"`
}

// DayJSON is one day of GET /api/report/timeseries.
type DayJSON struct {
	From   models.Timestamp `json:"from"`
	To     models.Timestamp `json:"to"`
	Counts int64            `json:"counts"`
	Prompt string           `json:"prompt"`
}

// TimeSeriesResponse is the body of GET /api/report/timeseries.
type TimeSeriesResponse struct {
	SnapshotID string           `json:"snapshotId"`
	ComputedAt models.Timestamp `json:"computedAt"`
	Days       []DayJSON        `json:"thisMonthEveryDay"`
}

// DurationsResponse is the body of GET /api/report/durations.
type DurationsResponse struct {
	SnapshotID string           `json:"snapshotId"`
	ComputedAt models.Timestamp `json:"computedAt"`
	views.Distribution
}
