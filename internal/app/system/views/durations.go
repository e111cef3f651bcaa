package views

import (
	"math"
	"sort"

	"github.com/dalemusser/visitorstats/internal/domain/models"
	"github.com/montanaflynn/stats"
)

// Defaults for the staying-duration charts.
const (
	DefaultHistogramTicks = 40
	DefaultCDFCutoff      = 0.90
	millisPerMinute       = 60 * 1000
)

// cdfEpsilon absorbs rounding when comparing cumulative probabilities to the cutoff.
const cdfEpsilon = 1e-9

// Bin is one histogram bucket covering [X0, X1). The last bin also includes X1.
type Bin struct {
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Count int     `json:"count"`
}

// CDFPoint is the share of samples less than or equal to LTE.
type CDFPoint struct {
	LTE     float64 `json:"lte"`
	CumProb float64 `json:"cumProbs"`
}

// DistributionOptions tunes Distribute.
type DistributionOptions struct {
	Ticks  int     // approximate histogram threshold count
	Cutoff float64 // CDF points above this cumulative probability are dropped
}

// Distribution is everything the duration charts need.
type Distribution struct {
	Minutes    []float64  `json:"minutes"`
	Median     float64    `json:"median"`
	StdDev     float64    `json:"stdDev"`
	UpperBound float64    `json:"upperBound"`
	Excluded   int        `json:"excluded"` // samples above UpperBound
	Bins       []Bin      `json:"bins"`
	CDF        []CDFPoint `json:"cdf"`
}

// StayingDurations returns this month's staying durations in milliseconds.
func StayingDurations(p *models.Payload) []float64 {
	if p == nil {
		return nil
	}
	src := p.Inferences.StayingDurationsThisMonth
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// ToMinutes converts milliseconds to whole minutes, rounding halves up.
func ToMinutes(ms []float64) []float64 {
	out := make([]float64, len(ms))
	for i, v := range ms {
		out[i] = math.Floor(v/millisPerMinute + 0.5)
	}
	return out
}

// Spread returns the median and the sample standard deviation of values.
// The deviation is 0 when there are fewer than two values.
func Spread(values []float64) (median, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	data := stats.Float64Data(values)
	median, _ = data.Median()
	if len(values) < 2 {
		return median, 0
	}
	stddev, _ = stats.StandardDeviationSample(data)
	return median, stddev
}

// UpperBound is median + 3 standard deviations; values above it are treated
// as outliers and left out of the histogram.
func UpperBound(values []float64) float64 {
	median, stddev := Spread(values)
	return median + 3*stddev
}

// Histogram bins the values that do not exceed bound over [min(values), bound],
// using nice thresholds from Ticks.
func Histogram(values []float64, bound float64, ticks int) []Bin {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v <= bound {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	lo := kept[0]
	for _, v := range kept[1:] {
		lo = math.Min(lo, v)
	}
	hi := bound

	var thresholds []float64
	for _, t := range Ticks(lo, hi, ticks) {
		if t > lo && t < hi {
			thresholds = append(thresholds, t)
		}
	}

	bins := make([]Bin, len(thresholds)+1)
	for i := range bins {
		bins[i].X0 = lo
		bins[i].X1 = hi
		if i > 0 {
			bins[i].X0 = thresholds[i-1]
		}
		if i < len(thresholds) {
			bins[i].X1 = thresholds[i]
		}
	}

	for _, v := range kept {
		idx := sort.Search(len(thresholds), func(i int) bool { return thresholds[i] > v })
		bins[idx].Count++
	}
	return bins
}

// CDF returns the empirical cumulative distribution of values over their
// distinct values in ascending order, keeping only points whose cumulative
// probability is at most cutoff.
func CDF(values []float64, cutoff float64) []CDFPoint {
	if len(values) == 0 {
		return nil
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var out []CDFPoint
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		cum := float64(j) / n
		if cum > cutoff+cdfEpsilon {
			break
		}
		out = append(out, CDFPoint{LTE: sorted[i], CumProb: cum})
		i = j
	}
	return out
}

// Distribute converts raw millisecond durations into the histogram and CDF
// views.
func Distribute(ms []float64, opts DistributionOptions) Distribution {
	if opts.Ticks <= 0 {
		opts.Ticks = DefaultHistogramTicks
	}
	if opts.Cutoff <= 0 {
		opts.Cutoff = DefaultCDFCutoff
	}

	minutes := ToMinutes(ms)
	median, stddev := Spread(minutes)
	bound := median + 3*stddev

	excluded := 0
	for _, v := range minutes {
		if v > bound {
			excluded++
		}
	}

	return Distribution{
		Minutes:    minutes,
		Median:     median,
		StdDev:     stddev,
		UpperBound: bound,
		Excluded:   excluded,
		Bins:       Histogram(minutes, bound, opts.Ticks),
		CDF:        CDF(minutes, opts.Cutoff),
	}
}
