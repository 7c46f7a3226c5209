package timeseries

import (
	"math"
	"sort"
)

// ZScore computes the rolling z-score (x - rolling mean) / rolling std over
// the trailing window, requiring at least window/2 non-missing observations.
// A zero rolling standard deviation yields a missing value at that position,
// never an infinity.
func (s Series) ZScore(window int) Series {
	return s.ZScoreMinPeriods(window, window/2)
}

// ZScoreMinPeriods is ZScore with an explicit minimum observation count.
func (s Series) ZScoreMinPeriods(window, minPeriods int) Series {
	mean := s.RollingMean(window, minPeriods)
	std := s.RollingStd(window, minPeriods)
	out := NewMissing(s.Index)
	for i := range s.Values {
		if std.Values[i] == 0 {
			continue
		}
		out.Values[i] = (s.Values[i] - mean.Values[i]) / std.Values[i]
	}
	return out
}

// Winsorize caps the non-missing values of s at the distribution limits
// implied by lowerPct and upperPct, given as percentiles of the original
// non-missing distribution (e.g. 1 and 99). The lowest lowerPct/100 and
// highest (100-upperPct)/100 fractions are clamped to the boundary order
// statistics. Missing values are excluded from the limit computation and
// stay missing in the output.
func Winsorize(s Series, lowerPct, upperPct float64) Series {
	lowerFrac := lowerPct / 100
	upperFrac := (100 - upperPct) / 100

	observed := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}
	out := s.Clone()
	n := len(observed)
	if n == 0 {
		return out
	}
	sort.Float64s(observed)

	loIdx := int(lowerFrac * float64(n))
	hiIdx := n - 1 - int(upperFrac*float64(n))
	if loIdx > n-1 {
		loIdx = n - 1
	}
	if hiIdx < loIdx {
		hiIdx = loIdx
	}
	lo := observed[loIdx]
	hi := observed[hiIdx]

	for i, v := range out.Values {
		if math.IsNaN(v) {
			continue
		}
		if v < lo {
			out.Values[i] = lo
		} else if v > hi {
			out.Values[i] = hi
		}
	}
	return out
}
