package timeseries

import (
	"math"
	"sort"
)

// Quantile computes the q-quantile (0 <= q <= 1) of the non-missing values
// using linear interpolation between order statistics at rank q*(n-1). This
// matches the interpolation the upstream data contract expects; gonum's
// CumulantKind conventions differ, so the rank arithmetic is done here.
// Returns missing when no observation is present.
func Quantile(values []float64, q float64) float64 {
	observed := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	if len(observed) == 0 {
		return math.NaN()
	}
	sort.Float64s(observed)
	return quantileSorted(observed, q)
}

// quantileSorted computes the q-quantile of an already sorted, non-missing
// slice.
func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	rank := q * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Quantile computes the q-quantile of the series' non-missing values.
func (s Series) Quantile(q float64) float64 {
	return Quantile(s.Values, q)
}
