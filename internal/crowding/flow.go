package crowding

import (
	"fmt"

	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// FlowAttention builds the flow-attention proxy table: per instrument, a
// volume z-score over the short window, a return run-up z-score over the
// medium window and a crash-frequency z-score over the short window. An
// instrument without a declared volume series keeps its return components
// but skips the volume component with a warning.
func (b *Builder) FlowAttention(ds *dataset.Dataset) *timeseries.Frame {
	b.logger.Info("Building flow-attention crowding proxy")
	components := timeseries.NewFrame(ds.Index())

	for _, instrument := range ds.Instruments() {
		returns, _ := ds.Returns(instrument)

		if volume, ok := ds.Volume(instrument); ok {
			volZ := volume.ZScore(b.params.ShortWindow)
			components.AddSeries(fmt.Sprintf("%s_vol_zscore", instrument), volZ)
		} else {
			b.logger.WithField("instrument", instrument).
				Warn("No volume series declared, skipping volume component")
		}

		runUp := returns.RollingCompound(b.params.MediumWindow)
		components.AddSeries(fmt.Sprintf("%s_ret_zscore", instrument), runUp.ZScore(b.params.MediumWindow))

		components.AddSeries(fmt.Sprintf("%s_crash_freq", instrument), b.crashFrequency(returns))
	}

	b.logger.WithField("components", components.Width()).Info("Flow-attention proxy created")
	metrics.RecordProxyComponents("flow_attention", components.Width())
	return components
}

// crashFrequency counts, inside a rolling short window, the days whose raw
// return falls below the instrument's whole-sample 5th percentile, then
// z-scores that count over the same window.
func (b *Builder) crashFrequency(returns timeseries.Series) timeseries.Series {
	threshold := returns.Quantile(crashFrequencyQuantile)

	crashDays := timeseries.NewMissing(returns.Index)
	for i, r := range returns.Values {
		if r < threshold {
			crashDays.Values[i] = 1
		} else {
			crashDays.Values[i] = 0
		}
	}

	frequency := crashDays.RollingSum(b.params.ShortWindow)
	return frequency.ZScore(b.params.ShortWindow)
}
