package crowding

import (
	"fmt"

	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// FactorSide builds the factor-side proxy table from factor return
// characteristics: per factor, the short-window rolling volatility and the
// short-window lag-1 autocorrelation, each z-scored over the medium window.
// The dataset already excludes the risk-free factor from Factors().
func (b *Builder) FactorSide(ds *dataset.Dataset) *timeseries.Frame {
	b.logger.Info("Building factor-side crowding proxy")
	components := timeseries.NewFrame(ds.Index())

	for _, factor := range ds.Factors() {
		returns, _ := ds.FactorReturns(factor)

		vol := returns.RollingStd(b.params.ShortWindow, b.params.ShortWindow)
		components.AddSeries(fmt.Sprintf("%s_vol_zscore", factor), vol.ZScore(b.params.MediumWindow))

		autocorr := returns.RollingAutocorr(b.params.ShortWindow, 1)
		components.AddSeries(fmt.Sprintf("%s_autocorr_zscore", factor), autocorr.ZScore(b.params.MediumWindow))
	}

	b.logger.WithField("components", components.Width()).Info("Factor-side proxy created")
	metrics.RecordProxyComponents("factor_side", components.Width())
	return components
}
