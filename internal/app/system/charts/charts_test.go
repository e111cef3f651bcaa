package charts

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/visitorstats/internal/app/system/views"
	"github.com/dalemusser/visitorstats/internal/domain/models"
)

func days(n int) []models.DayCount {
	start := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DayCount, n)
	for i := range out {
		from := start.AddDate(0, 0, i)
		out[i] = models.DayCount{
			From:   models.Timestamp{Time: from},
			To:     models.Timestamp{Time: from.AddDate(0, 0, 1)},
			Counts: int64(10 + i*3),
		}
	}
	return out
}

func assertSVG(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output is not SVG: %.80q", buf.String())
	}
}

func TestTimeSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := TimeSeries(&buf, days(10), Options{}); err != nil {
		t.Fatalf("TimeSeries() error = %v", err)
	}
	assertSVG(t, &buf)
}

func TestTimeSeries_AllZero(t *testing.T) {
	d := days(3)
	for i := range d {
		d[i].Counts = 0
	}
	var buf bytes.Buffer
	if err := TimeSeries(&buf, d, DefaultOptions()); err != nil {
		t.Fatalf("TimeSeries() error = %v", err)
	}
	assertSVG(t, &buf)
}

func TestHistogram(t *testing.T) {
	dist := views.Distribute([]float64{60000, 120000, 180000, 240000, 600000}, views.DistributionOptions{})
	var buf bytes.Buffer
	if err := Histogram(&buf, dist.Bins, Options{Width: 640, Height: 320}); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	assertSVG(t, &buf)
}

func TestCDF(t *testing.T) {
	points := views.CDF([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, views.DefaultCDFCutoff)
	var buf bytes.Buffer
	if err := CDF(&buf, points, DefaultOptions()); err != nil {
		t.Fatalf("CDF() error = %v", err)
	}
	assertSVG(t, &buf)
}

func TestNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := TimeSeries(&buf, days(1), DefaultOptions()); !errors.Is(err, ErrNoData) {
		t.Errorf("TimeSeries(1 day) error = %v, want ErrNoData", err)
	}
	same := days(3)
	for i := range same {
		same[i].From = same[0].From
	}
	if err := TimeSeries(&buf, same, DefaultOptions()); !errors.Is(err, ErrNoData) {
		t.Errorf("TimeSeries(same instant) error = %v, want ErrNoData", err)
	}
	if err := Histogram(&buf, nil, DefaultOptions()); !errors.Is(err, ErrNoData) {
		t.Errorf("Histogram(nil) error = %v, want ErrNoData", err)
	}
	if err := CDF(&buf, []views.CDFPoint{{LTE: 1, CumProb: 0.5}}, DefaultOptions()); !errors.Is(err, ErrNoData) {
		t.Errorf("CDF(1 point) error = %v, want ErrNoData", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written when there is no data")
	}
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{Width: 300}.normalized()
	if o.Width != 300 || o.Height != 400 || o.Margin != DefaultMargin {
		t.Errorf("normalized() = %+v", o)
	}
}
