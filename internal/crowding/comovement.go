package crowding

import (
	"fmt"

	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// CoMovement builds the co-movement proxy table: a rolling medium-window
// correlation column for every unordered instrument pair plus an avg_corr
// column averaging the pair columns per timestamp. Fewer than two
// instruments is recoverable: a warning is logged and an empty table is
// returned.
func (b *Builder) CoMovement(ds *dataset.Dataset) *timeseries.Frame {
	b.logger.Info("Building co-movement crowding proxy")

	instruments := ds.Instruments()
	components := timeseries.NewFrame(ds.Index())
	if len(instruments) < 2 {
		b.logger.WithField("instruments", len(instruments)).
			Warn("Need at least 2 instruments for correlation proxy")
		return components
	}

	pairs := make([]string, 0, len(instruments)*(len(instruments)-1)/2)
	for i, first := range instruments {
		firstReturns, _ := ds.Returns(first)
		for _, second := range instruments[i+1:] {
			secondReturns, _ := ds.Returns(second)
			name := fmt.Sprintf("corr_%s_%s", first, second)
			components.AddSeries(name, firstReturns.RollingCorr(secondReturns, b.params.MediumWindow))
			pairs = append(pairs, name)
		}
	}

	components.AddSeries("avg_corr", components.MeanOf(pairs))

	b.logger.WithField("components", components.Width()).Info("Co-movement proxy created")
	metrics.RecordProxyComponents("comovement", components.Width())
	return components
}
