package timeseries

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"time"
)

// Frame is a column-oriented table of float64 series sharing one time index.
// Column order is insertion order.
type Frame struct {
	index []time.Time
	names []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame over the given index.
func NewFrame(index []time.Time) *Frame {
	return &Frame{
		index: index,
		cols:  make(map[string][]float64),
	}
}

// Index returns the shared time index.
func (f *Frame) Index() []time.Time {
	return f.index
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.names)
}

// Empty reports whether the frame has no columns.
func (f *Frame) Empty() bool {
	return len(f.names) == 0
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Add appends a column. The values must have the same length as the index;
// an existing column of the same name is replaced in place.
func (f *Frame) Add(name string, values []float64) {
	if len(values) != len(f.index) {
		panic("timeseries: column length does not match frame index")
	}
	if _, exists := f.cols[name]; !exists {
		f.names = append(f.names, name)
	}
	f.cols[name] = values
}

// AddSeries appends a series as a column. The series must share the frame's
// index length.
func (f *Frame) AddSeries(name string, s Series) {
	f.Add(name, s.Values)
}

// Column returns the named column as a Series over the frame index.
func (f *Frame) Column(name string) (Series, bool) {
	values, ok := f.cols[name]
	if !ok {
		return Series{}, false
	}
	return Series{Index: f.index, Values: values}, true
}

// Mean computes the per-row arithmetic mean across all non-missing column
// values. Rows where every column is missing yield a missing value, as does
// every row of a frame with no columns.
func (f *Frame) Mean() Series {
	out := NewMissing(f.index)
	for i := range f.index {
		sum := 0.0
		count := 0
		for _, name := range f.names {
			v := f.cols[name][i]
			if !math.IsNaN(v) {
				sum += v
				count++
			}
		}
		if count > 0 {
			out.Values[i] = sum / float64(count)
		}
	}
	return out
}

// MeanOf computes the per-row mean restricted to the named columns.
func (f *Frame) MeanOf(names []string) Series {
	out := NewMissing(f.index)
	for i := range f.index {
		sum := 0.0
		count := 0
		for _, name := range names {
			values, ok := f.cols[name]
			if !ok {
				continue
			}
			if v := values[i]; !math.IsNaN(v) {
				sum += v
				count++
			}
		}
		if count > 0 {
			out.Values[i] = sum / float64(count)
		}
	}
	return out
}

// DropMissing returns a copy of the frame keeping only rows where every
// column is observed.
func (f *Frame) DropMissing() *Frame {
	keep := make([]int, 0, len(f.index))
	for i := range f.index {
		complete := true
		for _, name := range f.names {
			if math.IsNaN(f.cols[name][i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}
	index := make([]time.Time, len(keep))
	for j, i := range keep {
		index[j] = f.index[i]
	}
	out := NewFrame(index)
	for _, name := range f.names {
		values := make([]float64, len(keep))
		for j, i := range keep {
			values[j] = f.cols[name][i]
		}
		out.Add(name, values)
	}
	return out
}

// Concat joins frames column-wise with an outer join on timestamps: the
// result index is the sorted union of all input indices and absent rows are
// filled with missing values. Column order follows frame order.
func Concat(frames ...*Frame) *Frame {
	seen := make(map[int64]struct{})
	union := make([]time.Time, 0)
	for _, frame := range frames {
		for _, t := range frame.index {
			key := t.UnixNano()
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				union = append(union, t)
			}
		}
	}
	sort.Slice(union, func(i, j int) bool { return union[i].Before(union[j]) })

	lookup := make(map[int64]int, len(union))
	for i, t := range union {
		lookup[t.UnixNano()] = i
	}

	out := NewFrame(union)
	for _, frame := range frames {
		for _, name := range frame.names {
			values := make([]float64, len(union))
			for i := range values {
				values[i] = math.NaN()
			}
			for i, t := range frame.index {
				values[lookup[t.UnixNano()]] = frame.cols[name][i]
			}
			out.Add(name, values)
		}
	}
	return out
}

// ToCSV renders the frame as CSV with an ISO-8601 timestamp column.
func (f *Frame) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("time")
	for _, name := range f.names {
		buf.WriteString(",")
		buf.WriteString(name)
	}
	buf.WriteString("\n")
	for i, t := range f.index {
		buf.WriteString(t.Format("2006-01-02"))
		for _, name := range f.names {
			buf.WriteString(",")
			v := f.cols[name][i]
			if math.IsNaN(v) {
				continue
			}
			buf.WriteString(strconv.FormatFloat(v, 'f', 6, 64))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
