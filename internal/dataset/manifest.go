// Package dataset holds the aligned analysis table together with a typed
// manifest describing the role of every column. Roles are resolved once at
// construction; downstream engines never infer column meaning from names.
package dataset

import (
	"errors"
	"fmt"
)

// Role classifies a series in the aligned table.
type Role string

const (
	RoleInstrumentReturn Role = "instrument_return"
	RoleInstrumentVolume Role = "instrument_volume"
	RoleFactorReturn     Role = "factor_return"
	// RoleAuxiliary is an aligned series carried alongside the analysis
	// columns without an instrument or factor identity, e.g. a market
	// stress level consumed by the predictive dataset.
	RoleAuxiliary Role = "auxiliary"
)

// Custom errors
var (
	ErrDuplicateColumn = errors.New("duplicate column name in manifest")
	ErrUnknownRole     = errors.New("unknown series role")
	ErrMissingColumn   = errors.New("manifest references column absent from table")
)

// SeriesSpec declares one column of the aligned table.
type SeriesSpec struct {
	// Name is the column name in the aligned table.
	Name string
	// Role classifies the series.
	Role Role
	// Instrument identifies the instrument for instrument roles.
	Instrument string
	// Factor identifies the factor for the factor-return role.
	Factor string
	// RiskFree marks a factor as the risk-free rate, which the factor-side
	// proxy excludes.
	RiskFree bool
}

// Manifest enumerates every series of the aligned table.
type Manifest []SeriesSpec

// Validate checks the manifest for structural problems.
func (m Manifest) Validate() error {
	seen := make(map[string]struct{}, len(m))
	for _, spec := range m {
		if spec.Name == "" {
			return fmt.Errorf("series spec with empty name")
		}
		if _, dup := seen[spec.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, spec.Name)
		}
		seen[spec.Name] = struct{}{}

		switch spec.Role {
		case RoleInstrumentReturn, RoleInstrumentVolume:
			if spec.Instrument == "" {
				return fmt.Errorf("series %q: instrument role requires an instrument identifier", spec.Name)
			}
		case RoleFactorReturn:
			if spec.Factor == "" {
				return fmt.Errorf("series %q: factor role requires a factor identifier", spec.Name)
			}
		case RoleAuxiliary:
			// no identifier beyond the column name
		default:
			return fmt.Errorf("%w: %q (series %q)", ErrUnknownRole, spec.Role, spec.Name)
		}
	}
	return nil
}
