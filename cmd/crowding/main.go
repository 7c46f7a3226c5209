// Package main provides the factor crowding analysis CLI.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/factor-crowding/internal/analysis"
	"github.com/yourusername/factor-crowding/internal/config"
	"github.com/yourusername/factor-crowding/internal/crowding"
	"github.com/yourusername/factor-crowding/internal/dataset"
	applogger "github.com/yourusername/factor-crowding/internal/logger"
	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/predict"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	outputDir  string
	logger     *logrus.Logger
	cfg        *config.Config
	ds         *dataset.Dataset
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "./output", "Directory for result files")
}

var rootCmd = &cobra.Command{
	Use:   "crowding",
	Short: "Factor crowding and crash risk analysis",
	Long:  `Analyze factor return series for drawdown episodes, crash events and composite crowding signals.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		if err := setup(); err != nil {
			return fmt.Errorf("failed to set up pipeline: %w", err)
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: drawdowns, crash flags and crowding indices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze()
	},
}

var drawdownsCmd = &cobra.Command{
	Use:   "drawdowns",
	Short: "Report drawdown episodes and crash flags per factor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDrawdowns()
	},
}

var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "Build the crowding proxy tables and composite indices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndices()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("crowding %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	rootCmd.AddCommand(analyzeCmd, drawdownsCmd, indicesCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// setup loads configuration, builds the logger and assembles the aligned
// dataset from the declared series files.
func setup() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err = config.Validate(cfg); err != nil {
		return err
	}

	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	raw, err := loadDeclaredSeries(cfg.Data, applogger.ComponentLogger(logger, "dataset"))
	if err != nil {
		return err
	}
	frame, err := dataset.Align(raw, applogger.ComponentLogger(logger, "dataset"))
	if err != nil {
		return fmt.Errorf("failed to align input series: %w", err)
	}
	ds, err = dataset.New(frame, cfg.Data.Manifest())
	if err != nil {
		return fmt.Errorf("failed to build dataset: %w", err)
	}
	metrics.UpdateDatasetRows(ds.Frame().Len())

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics.Address)
	}
	return nil
}

func newAnalyzer() *analysis.Analyzer {
	return analysis.NewAnalyzer(
		cfg.Analysis.CrashPercentile,
		cfg.Analysis.DrawdownThresholdPct,
		applogger.ComponentLogger(logger, "analysis"),
	)
}

func newBuilder() *crowding.Builder {
	return crowding.NewBuilder(crowding.Params{
		ShortWindow:    cfg.Analysis.ShortWindow,
		MediumWindow:   cfg.Analysis.MediumWindow,
		LongWindow:     cfg.Analysis.LongWindow,
		WinsorizeLower: cfg.Analysis.WinsorizeLower,
		WinsorizeUpper: cfg.Analysis.WinsorizeUpper,
	}, applogger.ComponentLogger(logger, "crowding"))
}

func runDrawdowns() error {
	sweep, err := newAnalyzer().AnalyzeFactors(ds)
	if err != nil {
		return err
	}
	for _, report := range sweep.Reports {
		if err := writeFile(fmt.Sprintf("episodes_%s.csv", report.Factor), report.Episodes.ToCSV()); err != nil {
			return err
		}
		if err := writeFile(fmt.Sprintf("episodes_%s.json", report.Factor), report.Episodes.ToJSON()); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"factor":       report.Factor,
			"episodes":     len(report.Episodes),
			"max_drawdown": report.MaxDrawdown,
		}).Info("Factor drawdown report written")
	}
	return nil
}

func runIndices() error {
	set := newBuilder().BuildAll(ds)
	if err := writeFile("crowding_indices.csv", set.ToFrame().ToCSV()); err != nil {
		return err
	}
	components := map[string]*timeseries.Frame{
		"flow_attention_components.csv": set.FlowAttention,
		"comovement_components.csv":     set.CoMovement,
		"factor_side_components.csv":    set.FactorSide,
	}
	for name, table := range components {
		if table.Empty() {
			logger.WithField("file", name).Warn("Proxy table is empty, skipping export")
			continue
		}
		if err := writeFile(name, table.ToCSV()); err != nil {
			return err
		}
	}
	return nil
}

func runAnalyze() error {
	if err := runDrawdowns(); err != nil {
		return err
	}
	set := newBuilder().BuildAll(ds)
	if err := writeFile("crowding_indices.csv", set.ToFrame().ToCSV()); err != nil {
		return err
	}

	// Predictive feature table for each configured forward window, built on
	// the first factor's daily crash flags.
	factors := ds.Factors()
	if len(factors) == 0 {
		return nil
	}
	returns, _ := ds.FactorReturns(factors[0])
	crashes, err := newAnalyzer().CrashFlags(returns, 1, analysis.MethodHistorical)
	if err != nil {
		return err
	}
	for _, window := range cfg.Analysis.ForwardWindows {
		table := predict.Prepare(ds, set.IndexAll, crashes, predict.Options{
			StressColumn:  cfg.Analysis.StressSeries,
			ControlFactor: factors[0],
			ForwardWindow: window,
		}, applogger.ComponentLogger(logger, "predict"))
		name := fmt.Sprintf("predictive_dataset_%dd.csv", window)
		if err := writeFile(name, table.ToCSV()); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(name, content string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func serveMetrics(address string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if err := http.ListenAndServe(address, mux); err != nil {
		logger.WithError(err).Error("Metrics server stopped")
	}
}
