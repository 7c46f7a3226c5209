// Package crowding builds crowding proxy component tables and composite
// crowding indices from the aligned analysis dataset.
//
// Three independent proxy sets are produced: flow-attention (volume and
// price momentum), co-movement (pairwise return correlations) and
// factor-side (volatility and autocorrelation regimes). A composite
// aggregator reduces any ordered collection of component tables to one
// index series.
package crowding

import (
	"github.com/sirupsen/logrus"
)

// crash-frequency component counts days below this whole-sample quantile
const crashFrequencyQuantile = 0.05

// Params carries the rolling-window and winsorization configuration shared
// by every proxy builder. LongWindow is part of the shared configuration
// but no current component consumes it directly.
type Params struct {
	ShortWindow    int
	MediumWindow   int
	LongWindow     int
	WinsorizeLower float64
	WinsorizeUpper float64
}

// Builder constructs crowding proxies and composite indices. The injected
// logger is the only side channel.
type Builder struct {
	params Params
	logger logrus.FieldLogger
}

// NewBuilder creates a Builder with the given parameters.
func NewBuilder(params Params, logger logrus.FieldLogger) *Builder {
	return &Builder{params: params, logger: logger}
}
