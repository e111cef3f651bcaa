// Package charts renders the report's derived views as SVG.
package charts

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/visitorstats/internal/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ContentType is the media type of every rendered chart.
const ContentType = "image/svg+xml"

// ErrNoData is returned when a view has too few points to draw.
var ErrNoData = errors.New("charts: not enough data to draw")

// steelBlue is the stroke and fill colour of every series.
var steelBlue = drawing.Color{R: 70, G: 130, B: 180, A: 255}

// Margin is the space between the drawing surface edge and the plot area.
type Margin struct {
	Top, Right, Bottom, Left int
}

// DefaultMargin matches the report layout.
var DefaultMargin = Margin{Top: 30, Right: 60, Bottom: 30, Left: 60}

// Options sizes a chart.
type Options struct {
	Width  int
	Height int
	Margin Margin
}

// DefaultOptions returns an 800x400 chart with DefaultMargin.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 400, Margin: DefaultMargin}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Margin == (Margin{}) {
		o.Margin = d.Margin
	}
	return o
}

func (o Options) background() chart.Style {
	return chart.Style{Padding: chart.Box{
		Top:    o.Margin.Top,
		Right:  o.Margin.Right,
		Bottom: o.Margin.Bottom,
		Left:   o.Margin.Left,
	}}
}

func lineStyle() chart.Style {
	return chart.Style{StrokeColor: steelBlue, StrokeWidth: 2.4}
}

// yRange is [0, max], widened to [0, 1] when every value is zero.
func yRange(max float64) *chart.ContinuousRange {
	if max <= 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max}
}

// TimeSeries draws visitor counts per day as a line.
func TimeSeries(w io.Writer, days []models.DayCount, opts Options) error {
	if len(days) < 2 {
		return ErrNoData
	}
	opts = opts.normalized()

	xs := make([]time.Time, len(days))
	ys := make([]float64, len(days))
	span := false
	for i, d := range days {
		xs[i] = d.From.Time
		ys[i] = float64(d.Counts)
		span = span || !xs[i].Equal(xs[0])
	}
	// A zero-width time axis cannot be drawn.
	if !span {
		return ErrNoData
	}

	c := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02"),
		},
		YAxis: chart.YAxis{
			Range:          yRange(float64(views.MaxCount(days))),
			ValueFormatter: intFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "visitors", XValues: xs, YValues: ys, Style: lineStyle()},
		},
	}
	return render(c.Render, w)
}

// Histogram draws binned staying durations as bars.
func Histogram(w io.Writer, bins []views.Bin, opts Options) error {
	if len(bins) == 0 {
		return ErrNoData
	}
	opts = opts.normalized()

	const spacing = 1
	plotWidth := opts.Width - opts.Margin.Left - opts.Margin.Right
	barWidth := plotWidth/len(bins) - spacing
	if barWidth < 1 {
		barWidth = 1
	}

	labelEvery := len(bins)/10 + 1
	bars := make([]chart.Value, len(bins))
	maxCount := 0
	for i, b := range bins {
		label := ""
		if i%labelEvery == 0 {
			label = trimFloat(b.X0)
		}
		bars[i] = chart.Value{
			Label: label,
			Value: float64(b.Count),
			Style: chart.Style{FillColor: steelBlue, StrokeColor: steelBlue},
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	c := chart.BarChart{
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: opts.background(),
		YAxis: chart.YAxis{
			Range:          yRange(float64(maxCount)),
			ValueFormatter: intFormatter,
		},
		Bars: bars,
	}
	return render(c.Render, w)
}

// CDF draws the cumulative probability curve of staying durations.
func CDF(w io.Writer, points []views.CDFPoint, opts Options) error {
	if len(points) < 2 {
		return ErrNoData
	}
	opts = opts.normalized()

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	maxProb := 0.0
	for i, p := range points {
		xs[i] = p.LTE
		ys[i] = p.CumProb
		if p.CumProb > maxProb {
			maxProb = p.CumProb
		}
	}

	c := chart.Chart{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: opts.background(),
		XAxis: chart.XAxis{
			ValueFormatter: floatFormatter,
		},
		YAxis: chart.YAxis{
			Range: yRange(maxProb),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "cumulative", XValues: xs, YValues: ys, Style: lineStyle()},
		},
	}
	return render(c.Render, w)
}

func render(fn func(chart.RendererProvider, io.Writer) error, w io.Writer) error {
	if err := fn(chart.SVG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

func floatFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return trimFloat(f)
	}
	return ""
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.1f", f)
}
