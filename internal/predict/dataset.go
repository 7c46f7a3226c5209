// Package predict assembles the feature table consumed by the downstream
// crash-risk models. Model estimation itself is an external collaborator;
// this package only prepares aligned features and the forward crash target.
package predict

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/factor-crowding/internal/analysis"
	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// stress regime bands use a one-year rolling window
const (
	stressWindow       = 252
	highStressQuantile = 0.75
	lowStressQuantile  = 0.25
	controlWindow      = 20
)

// Options configures feature assembly.
type Options struct {
	// StressColumn names an optional market-stress series in the dataset
	// table (e.g. an implied volatility index). Empty disables the stress
	// regime features.
	StressColumn string
	// ControlFactor optionally adds 20-period volatility and compounded
	// return controls for the named factor.
	ControlFactor string
	// ForwardWindow is how many periods ahead the crash target looks.
	ForwardWindow int
}

// Prepare builds the predictive feature table: the crowding index, stress
// regime dummies, rolling controls, the crowding-stress interaction and a
// forward-shifted binary crash target. Rows with any missing value are
// dropped.
func Prepare(ds *dataset.Dataset, crowding timeseries.Series, crashes analysis.Flags, opts Options, logger logrus.FieldLogger) *timeseries.Frame {
	logger.WithField("forward_window", opts.ForwardWindow).Info("Preparing predictive dataset")

	frame := timeseries.NewFrame(ds.Index())
	frame.AddSeries("crowding_index", crowding)

	var highStress timeseries.Series
	haveStress := false
	if opts.StressColumn != "" {
		if stress, ok := ds.Column(opts.StressColumn); ok {
			high := stress.RollingQuantile(stressWindow, highStressQuantile)
			low := stress.RollingQuantile(stressWindow, lowStressQuantile)
			highStress = dummyAbove(stress, high)
			frame.AddSeries("stress_level", stress)
			frame.AddSeries("stress_high", highStress)
			frame.AddSeries("stress_low", dummyBelow(stress, low))
			haveStress = true
		} else {
			logger.WithField("column", opts.StressColumn).Warn("Stress column not found")
		}
	}

	if opts.ControlFactor != "" {
		if returns, ok := ds.FactorReturns(opts.ControlFactor); ok {
			frame.AddSeries(fmt.Sprintf("%s_vol_%dd", opts.ControlFactor, controlWindow),
				returns.RollingStd(controlWindow, controlWindow))
			frame.AddSeries(fmt.Sprintf("%s_ret_%dd", opts.ControlFactor, controlWindow),
				returns.RollingSum(controlWindow))
		} else {
			logger.WithField("factor", opts.ControlFactor).Warn("Control factor not found")
		}
	}

	if haveStress {
		frame.AddSeries("crowding_x_stress", crowding.Mul(highStress))
	}

	frame.AddSeries("crash_target", forwardTarget(crashes, opts.ForwardWindow))

	before := frame.Len()
	out := frame.DropMissing()
	logger.WithFields(logrus.Fields{
		"observations": out.Len(),
		"dropped":      before - out.Len(),
	}).Info("Predictive dataset prepared")
	return out
}

// forwardTarget shifts the crash flags forward so the target at t marks a
// crash at t+window. Positions past the end of the sample fill with zero.
func forwardTarget(crashes analysis.Flags, window int) timeseries.Series {
	numeric := timeseries.NewMissing(crashes.Index)
	for i, flagged := range crashes.Values {
		if flagged {
			numeric.Values[i] = 1
		} else {
			numeric.Values[i] = 0
		}
	}
	return numeric.Shift(-window).FillMissing(0)
}

func dummyAbove(s, threshold timeseries.Series) timeseries.Series {
	out := timeseries.NewMissing(s.Index)
	for i := range s.Values {
		if s.Values[i] > threshold.Values[i] {
			out.Values[i] = 1
		} else {
			out.Values[i] = 0
		}
	}
	return out
}

func dummyBelow(s, threshold timeseries.Series) timeseries.Series {
	out := timeseries.NewMissing(s.Index)
	for i := range s.Values {
		if s.Values[i] < threshold.Values[i] {
			out.Values[i] = 1
		} else {
			out.Values[i] = 0
		}
	}
	return out
}
