package pipeline

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// present returns the non-NaN values of xs in a new slice.
func present(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Percentile returns the p-th percentile (0-100) of the non-missing values,
// interpolating linearly between the two nearest ranks at (n-1)*p/100.
// It returns NaN when there are no values.
func Percentile(xs []float64, p float64) float64 {
	vals := present(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)

	pos := float64(len(vals)-1) * p / 100
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return vals[lo]
	}
	frac := pos - float64(lo)
	return vals[lo] + (vals[hi]-vals[lo])*frac
}

// Median is the 50th percentile of the non-missing values.
func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}

// Mean averages the non-missing values, NaN when there are none.
func Mean(xs []float64) float64 {
	vals := present(xs)
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// Sum adds the non-missing values. An all-missing input sums to 0.
func Sum(xs []float64) float64 {
	return floats.Sum(present(xs))
}
