package predict

import (
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/factor-crowding/internal/analysis"
	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

func testIndex(n int) []time.Time {
	index := make([]time.Time, n)
	start := time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range index {
		index[i] = start.AddDate(0, 0, i)
	}
	return index
}

// testDataset builds a dataset with one factor return column and a declared
// auxiliary stress column, as a config with analysis.stress_series wires it.
func testDataset(t *testing.T, n int) *dataset.Dataset {
	t.Helper()
	frame := timeseries.NewFrame(testIndex(n))

	factor := make([]float64, n)
	stress := make([]float64, n)
	for i := 0; i < n; i++ {
		factor[i] = 0.004 * math.Sin(float64(i)*0.31)
		stress[i] = 15 + 10*math.Sin(float64(i)*0.05)
	}
	frame.Add("Mom", factor)
	frame.Add("vix", stress)

	ds, err := dataset.New(frame, dataset.Manifest{
		{Name: "Mom", Role: dataset.RoleFactorReturn, Factor: "Mom"},
		{Name: "vix", Role: dataset.RoleAuxiliary},
	})
	require.NoError(t, err)
	return ds
}

func constantCrowding(index []time.Time) timeseries.Series {
	s := timeseries.NewMissing(index)
	for i := range s.Values {
		s.Values[i] = 0.5 + 0.001*float64(i)
	}
	return s
}

func flagsAt(index []time.Time, positions ...int) analysis.Flags {
	flags := analysis.Flags{Index: index, Values: make([]bool, len(index))}
	for _, p := range positions {
		flags.Values[p] = true
	}
	return flags
}

func TestForwardTarget(t *testing.T) {
	index := testIndex(8)
	target := forwardTarget(flagsAt(index, 5), 2)

	require.Equal(t, 8, target.Len())
	for i, v := range target.Values {
		want := 0.0
		if i == 3 {
			want = 1.0
		}
		assert.Equal(t, want, v, "position %d", i)
	}
}

func TestForwardTargetTailFilledZero(t *testing.T) {
	index := testIndex(6)
	target := forwardTarget(flagsAt(index), 3)

	for i, v := range target.Values {
		assert.Zero(t, v, "position %d: past-sample positions fill with zero", i)
	}
}

func TestPrepareMinimal(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ds := testDataset(t, 40)
	crowding := constantCrowding(ds.Index())

	frame := Prepare(ds, crowding, flagsAt(ds.Index(), 30), Options{ForwardWindow: 5}, logger)

	assert.Equal(t, []string{"crowding_index", "crash_target"}, frame.Columns())
	require.Equal(t, 40, frame.Len(), "fully observed inputs keep every row")

	target, _ := frame.Column("crash_target")
	assert.Equal(t, 1.0, target.Values[25], "target at t marks the crash at t+window")
	assert.Zero(t, target.Values[30])
}

func TestPrepareControlFactor(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ds := testDataset(t, 60)
	crowding := constantCrowding(ds.Index())

	frame := Prepare(ds, crowding, flagsAt(ds.Index()), Options{
		ControlFactor: "Mom",
		ForwardWindow: 5,
	}, logger)

	assert.ElementsMatch(t, []string{
		"crowding_index", "Mom_vol_20d", "Mom_ret_20d", "crash_target",
	}, frame.Columns())
	assert.Equal(t, 41, frame.Len(), "rows before the first full control window drop")
}

func TestPrepareStressRegime(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	ds := testDataset(t, 320)
	crowding := constantCrowding(ds.Index())

	frame := Prepare(ds, crowding, flagsAt(ds.Index()), Options{
		StressColumn:  "vix",
		ForwardWindow: 5,
	}, logger)

	assert.ElementsMatch(t, []string{
		"crowding_index", "stress_level", "stress_high", "stress_low",
		"crowding_x_stress", "crash_target",
	}, frame.Columns())
	require.Equal(t, 320, frame.Len(), "dummies are zero before the stress window fills, so no rows drop")

	high, _ := frame.Column("stress_high")
	low, _ := frame.Column("stress_low")
	index, _ := frame.Column("crowding_index")
	interaction, _ := frame.Column("crowding_x_stress")
	for i := range high.Values {
		assert.Contains(t, []float64{0, 1}, high.Values[i], "row %d", i)
		assert.Contains(t, []float64{0, 1}, low.Values[i], "row %d", i)
		assert.False(t, high.Values[i] == 1 && low.Values[i] == 1, "row %d: bands are disjoint", i)
		assert.InDelta(t, index.Values[i]*high.Values[i], interaction.Values[i], 1e-12, "row %d", i)
	}
	var above int
	for _, v := range high.Values {
		if v == 1 {
			above++
		}
	}
	assert.Positive(t, above, "some rows sit above the rolling 75th percentile")
}

func TestPrepareUnknownStressColumn(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	ds := testDataset(t, 40)
	crowding := constantCrowding(ds.Index())

	frame := Prepare(ds, crowding, flagsAt(ds.Index()), Options{
		StressColumn:  "missing",
		ForwardWindow: 5,
	}, logger)

	assert.Equal(t, []string{"crowding_index", "crash_target"}, frame.Columns())

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned)
}
