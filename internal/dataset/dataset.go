package dataset

import (
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// Dataset is the aligned analysis table with its manifest resolved into
// per-role lookups.
type Dataset struct {
	frame *timeseries.Frame

	instrumentReturns map[string]string // instrument -> column
	instrumentVolumes map[string]string
	factorReturns     map[string]string // factor -> column
	riskFree          map[string]bool
	instruments       []string
	factors           []string
}

// New builds a Dataset from an aligned frame and its manifest. Every series
// named by the manifest must exist as a frame column.
func New(frame *timeseries.Frame, manifest Manifest) (*Dataset, error) {
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	d := &Dataset{
		frame:             frame,
		instrumentReturns: make(map[string]string),
		instrumentVolumes: make(map[string]string),
		factorReturns:     make(map[string]string),
		riskFree:          make(map[string]bool),
	}

	for _, spec := range manifest {
		if _, ok := frame.Column(spec.Name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, spec.Name)
		}
		switch spec.Role {
		case RoleInstrumentReturn:
			d.instrumentReturns[spec.Instrument] = spec.Name
		case RoleInstrumentVolume:
			d.instrumentVolumes[spec.Instrument] = spec.Name
		case RoleFactorReturn:
			d.factorReturns[spec.Factor] = spec.Name
			d.riskFree[spec.Factor] = spec.RiskFree
		}
	}

	for instrument := range d.instrumentReturns {
		d.instruments = append(d.instruments, instrument)
	}
	sort.Strings(d.instruments)

	for factor := range d.factorReturns {
		if !d.riskFree[factor] {
			d.factors = append(d.factors, factor)
		}
	}
	sort.Strings(d.factors)

	return d, nil
}

// Index returns the shared time index of the aligned table.
func (d *Dataset) Index() []time.Time {
	return d.frame.Index()
}

// Frame exposes the underlying aligned table.
func (d *Dataset) Frame() *timeseries.Frame {
	return d.frame
}

// Instruments lists instruments with a return series, sorted by identifier.
func (d *Dataset) Instruments() []string {
	out := make([]string, len(d.instruments))
	copy(out, d.instruments)
	return out
}

// Factors lists factors excluding the risk-free rate, sorted by identifier.
func (d *Dataset) Factors() []string {
	out := make([]string, len(d.factors))
	copy(out, d.factors)
	return out
}

// Returns fetches the return series for an instrument.
func (d *Dataset) Returns(instrument string) (timeseries.Series, bool) {
	column, ok := d.instrumentReturns[instrument]
	if !ok {
		return timeseries.Series{}, false
	}
	return d.frame.Column(column)
}

// Volume fetches the volume series for an instrument, if declared.
func (d *Dataset) Volume(instrument string) (timeseries.Series, bool) {
	column, ok := d.instrumentVolumes[instrument]
	if !ok {
		return timeseries.Series{}, false
	}
	return d.frame.Column(column)
}

// FactorReturns fetches the return series for a factor.
func (d *Dataset) FactorReturns(factor string) (timeseries.Series, bool) {
	column, ok := d.factorReturns[factor]
	if !ok {
		return timeseries.Series{}, false
	}
	return d.frame.Column(column)
}

// Column fetches an arbitrary table column by name.
func (d *Dataset) Column(name string) (timeseries.Series, bool) {
	return d.frame.Column(name)
}
