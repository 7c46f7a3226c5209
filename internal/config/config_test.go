package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/factor-crowding/internal/dataset"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
app:
  name: factor-crowding
  environment: development
  log_level: info
data:
  series:
    - name: SPY_ret
      role: instrument_return
      instrument: SPY
      path: data/spy.csv
    - name: Mom
      role: factor_return
      factor: Mom
      path: data/mom.csv
      percent: true
    - name: VIX
      role: auxiliary
      path: data/vix.csv
`

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadWithDefaults(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	return cfg
}

func TestLoadWithDefaults(t *testing.T) {
	cfg := validConfig(t)

	assert.Equal(t, "factor-crowding", cfg.App.Name)
	assert.Equal(t, 63, cfg.Analysis.ShortWindow)
	assert.Equal(t, 126, cfg.Analysis.MediumWindow)
	assert.Equal(t, 252, cfg.Analysis.LongWindow)
	assert.Equal(t, 1.0, cfg.Analysis.CrashPercentile)
	assert.Equal(t, 1.0, cfg.Analysis.WinsorizeLower)
	assert.Equal(t, 99.0, cfg.Analysis.WinsorizeUpper)
	assert.Equal(t, 5.0, cfg.Analysis.DrawdownThresholdPct)
	assert.Equal(t, []int{5, 20}, cfg.Analysis.ForwardWindows)
	assert.False(t, cfg.Metrics.Enabled)

	require.Len(t, cfg.Data.Series, 3)
	assert.True(t, cfg.Data.Series[1].Percent)
	assert.Equal(t, "auxiliary", cfg.Data.Series[2].Role)
}

func TestStressSeriesConfiguration(t *testing.T) {
	cfg, err := LoadWithDefaults(writeConfig(t, minimalConfig+`
analysis:
  stress_series: VIX
`))
	require.NoError(t, err)
	assert.Equal(t, "VIX", cfg.Analysis.StressSeries)
	assert.NoError(t, Validate(cfg))
}

func TestLoadWithDefaultsOverride(t *testing.T) {
	cfg, err := LoadWithDefaults(writeConfig(t, minimalConfig+`
analysis:
  short_window: 21
  medium_window: 63
  long_window: 126
  crash_percentile: 2.5
`))
	require.NoError(t, err)

	assert.Equal(t, 21, cfg.Analysis.ShortWindow)
	assert.Equal(t, 63, cfg.Analysis.MediumWindow)
	assert.Equal(t, 126, cfg.Analysis.LongWindow)
	assert.Equal(t, 2.5, cfg.Analysis.CrashPercentile)
	assert.Equal(t, 5.0, cfg.Analysis.DrawdownThresholdPct, "omitted fields keep their defaults")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("TEST_SERIES_PATH", "data/from_env.csv")

	cfg, err := LoadWithDefaults(writeConfig(t, `
app:
  name: factor-crowding
  environment: development
  log_level: info
data:
  series:
    - name: SPY_ret
      role: instrument_return
      instrument: SPY
      path: ${TEST_SERIES_PATH}
`))
	require.NoError(t, err)
	assert.Equal(t, "data/from_env.csv", cfg.Data.Series[0].Path)
}

func TestValidateValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig(t)))
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "bad environment",
			mutate:  func(c *Config) { c.App.Environment = "qa" },
			wantMsg: "development, staging, production",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.App.LogLevel = "verbose" },
			wantMsg: "debug, info, warn, error",
		},
		{
			name:    "bad series role",
			mutate:  func(c *Config) { c.Data.Series[0].Role = "price" },
			wantMsg: "invalid value",
		},
		{
			name:    "window ordering",
			mutate:  func(c *Config) { c.Analysis.ShortWindow = 200 },
			wantMsg: "short_window must be smaller than medium_window",
		},
		{
			name:    "winsorize ordering",
			mutate:  func(c *Config) { c.Analysis.WinsorizeLower = 99.5 },
			wantMsg: "winsorize_lower must be below winsorize_upper",
		},
		{
			name:    "instrument role without instrument",
			mutate:  func(c *Config) { c.Data.Series[0].Instrument = "" },
			wantMsg: "requires an instrument identifier",
		},
		{
			name:    "factor role without factor",
			mutate:  func(c *Config) { c.Data.Series[1].Factor = "" },
			wantMsg: "requires a factor identifier",
		},
		{
			name:    "stress series not declared",
			mutate:  func(c *Config) { c.Analysis.StressSeries = "SKEW" },
			wantMsg: "does not name a declared series",
		},
		{
			name:    "metrics enabled without address",
			mutate:  func(c *Config) { c.Metrics.Enabled = true },
			wantMsg: "metrics.address is required",
		},
		{
			name:    "no series declared",
			mutate:  func(c *Config) { c.Data.Series = nil },
			wantMsg: "Series",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestManifestConversion(t *testing.T) {
	cfg := validConfig(t)
	manifest := cfg.Data.Manifest()

	require.Len(t, manifest, 3)
	assert.Equal(t, dataset.SeriesSpec{
		Name: "SPY_ret", Role: dataset.RoleInstrumentReturn, Instrument: "SPY",
	}, manifest[0])
	assert.Equal(t, dataset.RoleFactorReturn, manifest[1].Role)
	assert.Equal(t, dataset.RoleAuxiliary, manifest[2].Role)
	assert.NoError(t, manifest.Validate())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig(t)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Environment = "production"
	assert.True(t, cfg.IsProduction())
}
