package crowding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/factor-crowding/internal/timeseries"
)

func TestCompositeMeansPresentValues(t *testing.T) {
	builder, _ := newTestBuilder()
	index := testIndex(4)

	first := timeseries.NewFrame(index)
	first.Add("a", []float64{1, math.NaN(), 3, math.NaN()})
	second := timeseries.NewFrame(index)
	second.Add("b", []float64{3, 4, math.NaN(), math.NaN()})

	composite := builder.Composite([]Component{
		{Name: "first", Table: first},
		{Name: "second", Table: second},
	}, false)

	require.Equal(t, 4, composite.Len())
	assert.InDelta(t, 2.0, composite.Values[0], 1e-12)
	assert.InDelta(t, 4.0, composite.Values[1], 1e-12, "mean over the single present value")
	assert.InDelta(t, 3.0, composite.Values[2], 1e-12)
	assert.True(t, math.IsNaN(composite.Values[3]), "all-missing timestamp stays missing")
}

func TestCompositeWinsorizedBounds(t *testing.T) {
	builder, _ := newTestBuilder()
	index := testIndex(100)

	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	table := timeseries.NewFrame(index)
	table.Add("a", values)

	composite := builder.Composite([]Component{{Name: "only", Table: table}}, true)

	raw := timeseries.Series{Index: index, Values: values}
	lower := raw.Quantile(0.01)
	upper := raw.Quantile(0.99)
	for i, v := range composite.Values {
		assert.GreaterOrEqual(t, v, lower-1e-9, "row %d", i)
		assert.LessOrEqual(t, v, upper+1e-9, "row %d", i)
	}
	assert.Less(t, composite.Values[99], 100.0, "top tail must be capped")
	assert.Greater(t, composite.Values[0], 1.0, "bottom tail must be capped")
}

func TestCompositeEmptyComponent(t *testing.T) {
	builder, _ := newTestBuilder()
	index := testIndex(10)

	composite := builder.Composite([]Component{
		{Name: "empty", Table: timeseries.NewFrame(index)},
	}, true)

	require.Equal(t, 10, composite.Len())
	for i := range composite.Values {
		assert.True(t, timeseries.IsMissing(composite.Values[i]), "row %d", i)
	}
}

func TestBuildAll(t *testing.T) {
	builder, _ := newTestBuilder()
	ds := testDataset(t, 120, []string{"QQQ", "SPY"}, nil, []string{"Mom", "Val"})

	set := builder.BuildAll(ds)

	require.NotNil(t, set.FlowAttention)
	require.NotNil(t, set.CoMovement)
	require.NotNil(t, set.FactorSide)

	for _, index := range []timeseries.Series{set.IndexA, set.IndexB, set.IndexC, set.IndexAll} {
		assert.Equal(t, 120, index.Len())
		assert.Positive(t, index.Observed())
	}

	frame := set.ToFrame()
	assert.ElementsMatch(t, []string{
		"CrowdingIndex_A", "CrowdingIndex_B", "CrowdingIndex_C", "CrowdingIndex_All",
	}, frame.Columns())
	assert.Equal(t, 120, frame.Len())
}
