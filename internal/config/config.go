// Package config provides configuration management for the factor crowding
// analysis pipeline.
package config

import (
	"github.com/yourusername/factor-crowding/internal/dataset"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Analysis AnalysisConfig `mapstructure:"analysis" validate:"required"`
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig holds the rolling windows and thresholds shared by the
// drawdown and crowding engines.
type AnalysisConfig struct {
	ShortWindow  int `mapstructure:"short_window" validate:"required,gt=0"`
	MediumWindow int `mapstructure:"medium_window" validate:"required,gt=0"`
	LongWindow   int `mapstructure:"long_window" validate:"required,gt=0"`

	CrashPercentile      float64 `mapstructure:"crash_percentile" validate:"gte=0,lte=100"`
	WinsorizeLower       float64 `mapstructure:"winsorize_lower" validate:"gte=0,lte=100"`
	WinsorizeUpper       float64 `mapstructure:"winsorize_upper" validate:"gte=0,lte=100"`
	DrawdownThresholdPct float64 `mapstructure:"drawdown_threshold_pct" validate:"gte=0,lte=100"`

	ForwardWindows []int `mapstructure:"forward_windows" validate:"omitempty,dive,gt=0"`

	// StressSeries names a declared auxiliary series (e.g. an implied
	// volatility index) used for the stress regime features of the
	// predictive dataset. Empty disables them.
	StressSeries string `mapstructure:"stress_series"`
}

// DataConfig declares the input series and where the CLI loads them from.
type DataConfig struct {
	Series []SeriesConfig `mapstructure:"series" validate:"required,min=1,dive"`
}

// SeriesConfig declares one input series: its column name, its role and the
// CSV file the CLI reads it from.
type SeriesConfig struct {
	Name       string `mapstructure:"name" validate:"required"`
	Role       string `mapstructure:"role" validate:"required,oneof=instrument_return instrument_volume factor_return auxiliary"`
	Instrument string `mapstructure:"instrument"`
	Factor     string `mapstructure:"factor"`
	RiskFree   bool   `mapstructure:"risk_free"`
	Path       string `mapstructure:"path" validate:"required"`
	// Percent marks series published in percentage points, converted to
	// decimal returns at load time.
	Percent bool `mapstructure:"percent"`
	// Prices marks series delivered as price levels from which simple
	// returns are computed at load time.
	Prices bool `mapstructure:"prices"`
}

// MetricsConfig represents metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// Manifest converts the declared series into the dataset manifest.
func (d DataConfig) Manifest() dataset.Manifest {
	manifest := make(dataset.Manifest, 0, len(d.Series))
	for _, s := range d.Series {
		manifest = append(manifest, dataset.SeriesSpec{
			Name:       s.Name,
			Role:       dataset.Role(s.Role),
			Instrument: s.Instrument,
			Factor:     s.Factor,
			RiskFree:   s.RiskFree,
		})
	}
	return manifest
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true when running in the development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
