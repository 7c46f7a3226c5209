package timeseries

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// windowStart returns the first position of the trailing window ending at i.
func windowStart(i, window int) int {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	return start
}

// observedWindow collects the non-missing values of the trailing window
// ending at i into buf and returns the filled slice.
func (s Series) observedWindow(i, window int, buf []float64) []float64 {
	buf = buf[:0]
	for j := windowStart(i, window); j <= i; j++ {
		if !math.IsNaN(s.Values[j]) {
			buf = append(buf, s.Values[j])
		}
	}
	return buf
}

// RollingMean computes the trailing-window mean. A value is produced once at
// least minPeriods non-missing observations are inside the window.
func (s Series) RollingMean(window, minPeriods int) Series {
	if minPeriods < 1 {
		minPeriods = 1
	}
	out := NewMissing(s.Index)
	buf := make([]float64, 0, window)
	for i := range s.Values {
		buf = s.observedWindow(i, window, buf)
		if len(buf) >= minPeriods {
			out.Values[i] = stat.Mean(buf, nil)
		}
	}
	return out
}

// RollingStd computes the trailing-window sample standard deviation under
// the same minPeriods rule as RollingMean. A single-observation window
// yields a missing value.
func (s Series) RollingStd(window, minPeriods int) Series {
	if minPeriods < 1 {
		minPeriods = 1
	}
	out := NewMissing(s.Index)
	buf := make([]float64, 0, window)
	for i := range s.Values {
		buf = s.observedWindow(i, window, buf)
		if len(buf) >= minPeriods && len(buf) > 1 {
			out.Values[i] = stat.StdDev(buf, nil)
		}
	}
	return out
}

// RollingSum computes the trailing-window sum over full windows only.
func (s Series) RollingSum(window int) Series {
	out := NewMissing(s.Index)
	for i := window - 1; i < len(s.Values); i++ {
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(s.Values[j]) {
				ok = false
				break
			}
			sum += s.Values[j]
		}
		if ok {
			out.Values[i] = sum
		}
	}
	return out
}

// RollingCompound computes the compounded return over the trailing window,
// prod(1+v)-1, using full windows only. Any missing value inside the window
// yields a missing result.
func (s Series) RollingCompound(window int) Series {
	out := NewMissing(s.Index)
	for i := window - 1; i < len(s.Values); i++ {
		prod := 1.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(s.Values[j]) {
				ok = false
				break
			}
			prod *= 1 + s.Values[j]
		}
		if ok {
			out.Values[i] = prod - 1
		}
	}
	return out
}

// RollingCorr computes the trailing-window Pearson correlation between s and
// other, which must share the same index. Full windows only; a missing value
// on either side inside the window yields a missing result.
func (s Series) RollingCorr(other Series, window int) Series {
	out := NewMissing(s.Index)
	x := make([]float64, 0, window)
	y := make([]float64, 0, window)
	for i := window - 1; i < len(s.Values); i++ {
		x = x[:0]
		y = y[:0]
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(s.Values[j]) || math.IsNaN(other.Values[j]) {
				ok = false
				break
			}
			x = append(x, s.Values[j])
			y = append(y, other.Values[j])
		}
		if ok {
			out.Values[i] = stat.Correlation(x, y, nil)
		}
	}
	return out
}

// RollingAutocorr computes the trailing-window autocorrelation of s at the
// given lag: the correlation of the window against itself shifted by lag.
// Full windows only.
func (s Series) RollingAutocorr(window, lag int) Series {
	out := NewMissing(s.Index)
	if lag <= 0 || lag >= window {
		return out
	}
	head := make([]float64, 0, window)
	tail := make([]float64, 0, window)
	for i := window - 1; i < len(s.Values); i++ {
		head = head[:0]
		tail = tail[:0]
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(s.Values[j]) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for j := i - window + 1 + lag; j <= i; j++ {
			tail = append(tail, s.Values[j])
			head = append(head, s.Values[j-lag])
		}
		out.Values[i] = stat.Correlation(tail, head, nil)
	}
	return out
}

// ExpandingMax computes the running maximum over all observations up to and
// including each position, skipping missing values. Positions before the
// first observation are missing.
func (s Series) ExpandingMax() Series {
	out := NewMissing(s.Index)
	peak := math.NaN()
	for i, v := range s.Values {
		if !math.IsNaN(v) && (math.IsNaN(peak) || v > peak) {
			peak = v
		}
		out.Values[i] = peak
	}
	return out
}

// ExpandingQuantile computes, at each position, the q-quantile of all
// non-missing observations up to and including that position.
func (s Series) ExpandingQuantile(q float64) Series {
	out := NewMissing(s.Index)
	buf := make([]float64, 0, len(s.Values))
	for i, v := range s.Values {
		if !math.IsNaN(v) {
			buf = insertSorted(buf, v)
		}
		if len(buf) > 0 {
			out.Values[i] = quantileSorted(buf, q)
		}
	}
	return out
}

// RollingQuantile computes the trailing-window q-quantile over full windows
// only.
func (s Series) RollingQuantile(window int, q float64) Series {
	out := NewMissing(s.Index)
	buf := make([]float64, 0, window)
	for i := window - 1; i < len(s.Values); i++ {
		buf = s.observedWindow(i, window, buf)
		if len(buf) == window {
			out.Values[i] = Quantile(buf, q)
		}
	}
	return out
}

func insertSorted(sorted []float64, v float64) []float64 {
	lo, hi := 0, len(sorted)
	for lo < hi {
		mid := (lo + hi) / 2
		if sorted[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	sorted = append(sorted, 0)
	copy(sorted[lo+1:], sorted[lo:])
	sorted[lo] = v
	return sorted
}
