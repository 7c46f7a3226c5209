package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// Method selects how the crash threshold is determined.
type Method string

const (
	// MethodHistorical computes one quantile threshold over the entire
	// period-return series. It deliberately uses whole-sample information.
	MethodHistorical Method = "historical"
	// MethodRolling computes an expanding quantile using only past and
	// current observations, avoiding look-ahead.
	MethodRolling Method = "rolling"
)

// ErrUnsupportedMethod is returned for crash classification methods the
// analyzer does not implement.
var ErrUnsupportedMethod = errors.New("unsupported crash classification method")

// Flags is a per-timestamp boolean series.
type Flags struct {
	Index  []time.Time
	Values []bool
}

// Count returns the number of set flags.
func (f Flags) Count() int {
	n := 0
	for _, v := range f.Values {
		if v {
			n++
		}
	}
	return n
}

// CrashFlags flags timestamps whose period return falls below the crash
// quantile. window is the number of trailing periods compounded into each
// period return (1 means the raw series); multi-period returns use full
// windows only.
func (a *Analyzer) CrashFlags(returns timeseries.Series, window int, method Method) (Flags, error) {
	periodReturns := returns
	if window > 1 {
		periodReturns = returns.RollingCompound(window)
	}

	flags := Flags{Index: returns.Index, Values: make([]bool, returns.Len())}
	q := a.crashPercentile / 100

	switch method {
	case MethodHistorical:
		threshold := periodReturns.Quantile(q)
		for i, r := range periodReturns.Values {
			flags.Values[i] = r < threshold
		}
	case MethodRolling:
		thresholds := periodReturns.ExpandingQuantile(q)
		for i, r := range periodReturns.Values {
			flags.Values[i] = r < thresholds.Values[i]
		}
	default:
		return Flags{}, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	count := flags.Count()
	pct := 0.0
	if returns.Len() > 0 {
		pct = float64(count) / float64(returns.Len()) * 100
	}
	a.logger.WithFields(logrus.Fields{
		"window":  window,
		"method":  string(method),
		"crashes": count,
		"pct":     pct,
	}).Info("Identified crash events")
	metrics.RecordCrashFlags(count)

	return flags, nil
}
