package dataset

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// RawSeries is one independently indexed input series before alignment.
type RawSeries struct {
	Name   string
	Index  []time.Time
	Values []float64
}

// ErrNoOverlap indicates the raw series share no common timestamps.
var ErrNoOverlap = errors.New("raw series have no overlapping timestamps")

// Align inner-joins independently indexed raw series onto the calendar of
// timestamps present in every series, producing the aligned table the
// engines operate on. The result index is strictly increasing.
func Align(raw []RawSeries, logger logrus.FieldLogger) (*timeseries.Frame, error) {
	if len(raw) == 0 {
		return nil, ErrNoOverlap
	}

	// Count each timestamp once per series so a duplicate inside one
	// series cannot stand in for presence in another.
	counts := make(map[int64]int)
	times := make(map[int64]time.Time)
	for _, rs := range raw {
		seen := make(map[int64]struct{}, len(rs.Index))
		for _, t := range rs.Index {
			key := t.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			counts[key]++
			times[key] = t
		}
	}

	shared := make([]time.Time, 0)
	for key, n := range counts {
		if n == len(raw) {
			shared = append(shared, times[key])
		}
	}
	if len(shared) == 0 {
		return nil, ErrNoOverlap
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].Before(shared[j]) })

	lookup := make(map[int64]int, len(shared))
	for i, t := range shared {
		lookup[t.UnixNano()] = i
	}

	frame := timeseries.NewFrame(shared)
	for _, rs := range raw {
		values := make([]float64, len(shared))
		for i := range values {
			values[i] = math.NaN()
		}
		for i, t := range rs.Index {
			if pos, ok := lookup[t.UnixNano()]; ok {
				values[pos] = rs.Values[i]
			}
		}
		frame.Add(rs.Name, values)
	}

	logger.WithFields(logrus.Fields{
		"series": len(raw),
		"rows":   len(shared),
	}).Info("Aligned raw series onto shared calendar")

	return frame, nil
}

// ReturnsFromPrices computes simple returns p[t]/p[t-1]-1 from a price
// series. Price arithmetic runs on decimals so the division is exact before
// conversion; the first period has no prior price and is missing.
func ReturnsFromPrices(prices []decimal.Decimal) []float64 {
	returns := make([]float64, len(prices))
	for i := range returns {
		returns[i] = math.NaN()
	}
	one := decimal.NewFromInt(1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1].IsZero() {
			continue
		}
		r := prices[i].Div(prices[i-1]).Sub(one)
		returns[i], _ = r.Float64()
	}
	return returns
}

// PercentToDecimal converts percentage-point values (e.g. factor files
// published as 0.35 meaning 0.35%) to decimal returns.
func PercentToDecimal(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v / 100
	}
	return out
}
