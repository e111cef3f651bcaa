package views

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count evenly spaced "nice" values (multiples of 1, 2
// or 5 times a power of ten) within [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) || start > stop {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return nil
	}

	var out []float64
	if inc > 0 {
		r0 := math.Ceil(start / inc)
		r1 := math.Floor(stop / inc)
		for r := r0; r <= r1; r++ {
			out = append(out, r*inc)
		}
		return out
	}

	inc = -inc
	r0 := math.Ceil(start * inc)
	r1 := math.Floor(stop * inc)
	for r := r0; r <= r1; r++ {
		out = append(out, r/inc)
	}
	return out
}

// tickIncrement returns the tick step. Steps below one are returned as the
// negated inverse so that fractional ticks are computed by division, which
// avoids accumulating binary rounding error.
func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
