package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameAddAndColumn(t *testing.T) {
	frame := NewFrame(testIndex(3))
	frame.Add("a", []float64{1, 2, 3})
	frame.Add("b", []float64{4, 5, 6})

	assert.Equal(t, []string{"a", "b"}, frame.Columns())
	assert.Equal(t, 2, frame.Width())
	assert.Equal(t, 3, frame.Len())

	col, ok := frame.Column("b")
	require.True(t, ok)
	assert.Equal(t, []float64{4, 5, 6}, col.Values)

	_, ok = frame.Column("absent")
	assert.False(t, ok)
}

func TestFrameMeanSkipsMissing(t *testing.T) {
	frame := NewFrame(testIndex(3))
	frame.Add("a", []float64{1, math.NaN(), math.NaN()})
	frame.Add("b", []float64{3, 4, math.NaN()})

	mean := frame.Mean()
	assert.InDelta(t, 2, mean.Values[0], 1e-12)
	assert.InDelta(t, 4, mean.Values[1], 1e-12)
	assert.True(t, math.IsNaN(mean.Values[2]), "all-missing row must stay missing")
}

func TestEmptyFrameMeanAllMissing(t *testing.T) {
	frame := NewFrame(testIndex(4))
	mean := frame.Mean()
	for i, v := range mean.Values {
		assert.True(t, math.IsNaN(v), "position %d", i)
	}
}

func TestFrameMeanOfSubset(t *testing.T) {
	frame := NewFrame(testIndex(2))
	frame.Add("a", []float64{1, 1})
	frame.Add("b", []float64{3, 3})
	frame.Add("other", []float64{100, 100})

	mean := frame.MeanOf([]string{"a", "b"})
	assert.InDelta(t, 2, mean.Values[0], 1e-12)
	assert.InDelta(t, 2, mean.Values[1], 1e-12)
}

func TestConcatOuterJoin(t *testing.T) {
	index := testIndex(3)

	first := NewFrame(index[:2])
	first.Add("a", []float64{1, 2})

	second := NewFrame(index[1:])
	second.Add("b", []float64{3, 4})

	combined := Concat(first, second)
	require.Equal(t, 3, combined.Len())
	require.Equal(t, []string{"a", "b"}, combined.Columns())

	a, _ := combined.Column("a")
	b, _ := combined.Column("b")
	assert.Equal(t, 1.0, a.Values[0])
	assert.Equal(t, 2.0, a.Values[1])
	assert.True(t, math.IsNaN(a.Values[2]))
	assert.True(t, math.IsNaN(b.Values[0]))
	assert.Equal(t, 3.0, b.Values[1])
	assert.Equal(t, 4.0, b.Values[2])

	// composite semantics: per-row mean over present values
	mean := combined.Mean()
	assert.InDelta(t, 1.0, mean.Values[0], 1e-12)
	assert.InDelta(t, 2.5, mean.Values[1], 1e-12)
	assert.InDelta(t, 4.0, mean.Values[2], 1e-12)
}

func TestDropMissing(t *testing.T) {
	frame := NewFrame(testIndex(3))
	frame.Add("a", []float64{1, math.NaN(), 3})
	frame.Add("b", []float64{4, 5, 6})

	complete := frame.DropMissing()
	require.Equal(t, 2, complete.Len())

	a, _ := complete.Column("a")
	assert.Equal(t, []float64{1, 3}, a.Values)
}

func TestFrameToCSV(t *testing.T) {
	frame := NewFrame(testIndex(2))
	frame.Add("x", []float64{1.5, math.NaN()})

	csv := frame.ToCSV()
	assert.Contains(t, csv, "time,x")
	assert.Contains(t, csv, "2020-01-01,1.500000")
	// missing renders as an empty cell
	assert.Contains(t, csv, "2020-01-02,\n")
}
