package calculator

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// SampleStdDev returns the n-1 standard deviation.
// With fewer than two values the variance is undefined and 0 is returned.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// Quantile computes the q-th quantile (0..1) with linear interpolation
// between the two closest ranks, the convention used for median and percentile cut points.
func Quantile(values []float64, q float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("no values provided")
	}
	if q < 0 || q > 1 || math.IsNaN(q) {
		return 0, errors.New("quantile must be within [0, 1]")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, nil
}

// Median is Quantile(values, 0.5).
func Median(values []float64) (float64, error) {
	return Quantile(values, 0.5)
}

// Fraction returns the share of values for which pred holds, or 0 for an empty slice.
func Fraction[T any](values []T, pred func(T) bool) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if pred(v) {
			n++
		}
	}
	return float64(n) / float64(len(values))
}
