package analysis

import (
	"math"

	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// CumulativeWealth computes the wealth index prod(1+r) over the series. The
// first value is 1+r[0]; no look-ahead. A missing return propagates through
// every later wealth value.
func (a *Analyzer) CumulativeWealth(returns timeseries.Series) timeseries.Series {
	wealth := timeseries.NewMissing(returns.Index)
	acc := 1.0
	for i, r := range returns.Values {
		acc *= 1 + r
		wealth.Values[i] = acc
	}
	return wealth
}

// RunningPeak computes the expanding maximum of the wealth index, inclusive
// of the current point.
func (a *Analyzer) RunningPeak(wealth timeseries.Series) timeseries.Series {
	return wealth.ExpandingMax()
}

// Drawdown computes (wealth - peak) / peak for every position. Every value
// is <= 0, and exactly 0 where wealth sets a new running peak.
func (a *Analyzer) Drawdown(returns timeseries.Series) timeseries.Series {
	wealth := a.CumulativeWealth(returns)
	peak := a.RunningPeak(wealth)
	out := timeseries.NewMissing(returns.Index)
	for i := range out.Values {
		out.Values[i] = (wealth.Values[i] - peak.Values[i]) / peak.Values[i]
	}
	return out
}

// MaxDrawdown returns the minimum of the drawdown series as a negative
// fraction. An empty series yields a missing value; callers must treat that
// as absence of a result rather than a fault.
func (a *Analyzer) MaxDrawdown(returns timeseries.Series) float64 {
	drawdown := a.Drawdown(returns)
	min := math.NaN()
	for _, v := range drawdown.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}
