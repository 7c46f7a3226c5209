// Package analysis implements drawdown computation, drawdown episode
// segmentation and crash event classification over return series.
package analysis

import (
	"github.com/sirupsen/logrus"
)

// Analyzer detects drawdowns and crash events in return series. All methods
// are pure computations over their inputs; the injected logger is the only
// side channel.
type Analyzer struct {
	crashPercentile      float64
	drawdownThresholdPct float64
	logger               logrus.FieldLogger
}

// NewAnalyzer creates an Analyzer. crashPercentile is the quantile threshold
// for crash definition on a 0-100 scale; drawdownThresholdPct is the minimum
// episode depth in percent.
func NewAnalyzer(crashPercentile, drawdownThresholdPct float64, logger logrus.FieldLogger) *Analyzer {
	return &Analyzer{
		crashPercentile:      crashPercentile,
		drawdownThresholdPct: drawdownThresholdPct,
		logger:               logger,
	}
}
