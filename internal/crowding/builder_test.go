package crowding

import (
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

func testIndex(n int) []time.Time {
	index := make([]time.Time, n)
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range index {
		index[i] = start.AddDate(0, 0, i)
	}
	return index
}

func testParams() Params {
	return Params{
		ShortWindow:    5,
		MediumWindow:   10,
		LongWindow:     20,
		WinsorizeLower: 1,
		WinsorizeUpper: 99,
	}
}

func newTestBuilder() (*Builder, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewBuilder(testParams(), logger), hook
}

// testDataset builds an aligned table with the given instruments (returns
// plus volumes unless listed in withoutVolume) and factors.
func testDataset(t *testing.T, n int, instruments, withoutVolume, factors []string) *dataset.Dataset {
	t.Helper()
	frame := timeseries.NewFrame(testIndex(n))
	manifest := dataset.Manifest{}

	skipVolume := make(map[string]bool)
	for _, name := range withoutVolume {
		skipVolume[name] = true
	}

	for k, instrument := range instruments {
		returns := make([]float64, n)
		volumes := make([]float64, n)
		for i := 0; i < n; i++ {
			returns[i] = 0.01 * math.Sin(float64(i)*0.29+float64(k))
			volumes[i] = 1e6 * (1.5 + math.Cos(float64(i)*0.37+float64(k)))
		}
		retCol := instrument + "_ret"
		frame.Add(retCol, returns)
		manifest = append(manifest, dataset.SeriesSpec{
			Name: retCol, Role: dataset.RoleInstrumentReturn, Instrument: instrument,
		})
		if !skipVolume[instrument] {
			volCol := instrument + "_vol"
			frame.Add(volCol, volumes)
			manifest = append(manifest, dataset.SeriesSpec{
				Name: volCol, Role: dataset.RoleInstrumentVolume, Instrument: instrument,
			})
		}
	}

	for k, factor := range factors {
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			values[i] = 0.005 * math.Sin(float64(i)*0.23+float64(k)*2)
		}
		frame.Add(factor, values)
		manifest = append(manifest, dataset.SeriesSpec{
			Name: factor, Role: dataset.RoleFactorReturn, Factor: factor, RiskFree: factor == "RF",
		})
	}

	ds, err := dataset.New(frame, manifest)
	require.NoError(t, err)
	return ds
}
