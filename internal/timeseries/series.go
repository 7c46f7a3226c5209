// Package timeseries provides time-indexed series and frame types with the
// rolling-window statistics used by the drawdown and crowding engines.
// Missing observations are represented as IEEE NaN and are skipped or
// propagated by each kernel as documented.
package timeseries

import (
	"math"
	"time"
)

// Series is an ordered sequence of float64 observations indexed by strictly
// increasing timestamps. Missing values are NaN.
type Series struct {
	Index  []time.Time
	Values []float64
}

// IsMissing reports whether v represents a missing observation.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// New creates a Series from parallel index and value slices. Both slices
// must have the same length.
func New(index []time.Time, values []float64) Series {
	if len(index) != len(values) {
		panic("timeseries: index and values length mismatch")
	}
	return Series{Index: index, Values: values}
}

// NewMissing creates a Series over index with every value missing.
func NewMissing(index []time.Time) Series {
	values := make([]float64, len(index))
	for i := range values {
		values[i] = math.NaN()
	}
	return Series{Index: index, Values: values}
}

// Len returns the number of observations, missing or not.
func (s Series) Len() int {
	return len(s.Values)
}

// Observed returns the count of non-missing observations.
func (s Series) Observed() int {
	n := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy sharing no backing arrays with s.
func (s Series) Clone() Series {
	index := make([]time.Time, len(s.Index))
	copy(index, s.Index)
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return Series{Index: index, Values: values}
}

// Shift moves values by n positions along the index: for positive n the
// value at t comes from t-n, for negative n from t+n. Vacated positions are
// missing. The index itself is unchanged.
func (s Series) Shift(n int) Series {
	out := NewMissing(s.Index)
	for i := range s.Values {
		src := i - n
		if src >= 0 && src < len(s.Values) {
			out.Values[i] = s.Values[src]
		}
	}
	return out
}

// Mul returns the elementwise product of s and other. Both series must share
// the same index length; a missing value on either side stays missing.
func (s Series) Mul(other Series) Series {
	out := NewMissing(s.Index)
	for i := range s.Values {
		out.Values[i] = s.Values[i] * other.Values[i]
	}
	return out
}

// FillMissing replaces missing values with the given fill value.
func (s Series) FillMissing(fill float64) Series {
	out := s.Clone()
	for i, v := range out.Values {
		if math.IsNaN(v) {
			out.Values[i] = fill
		}
	}
	return out
}
