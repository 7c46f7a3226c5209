package analysis

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/factor-crowding/internal/dataset"
	"github.com/yourusername/factor-crowding/internal/metrics"
	"github.com/yourusername/factor-crowding/internal/timeseries"
)

// weekly crash flags compound returns over one trading week
const weeklyWindow = 5

// FactorReport bundles the drawdown analysis of a single factor.
type FactorReport struct {
	Factor        string
	Drawdown      timeseries.Series
	DailyCrashes  Flags
	WeeklyCrashes Flags
	Episodes      EpisodeList
	MaxDrawdown   float64
}

// FactorSweep is the drawdown analysis of every factor in a dataset.
type FactorSweep struct {
	RunID   uuid.UUID
	Reports []FactorReport
}

// AnalyzeFactors runs the full drawdown analysis for every factor in the
// dataset: drawdown series, daily and weekly crash flags, episode table and
// max drawdown.
func (a *Analyzer) AnalyzeFactors(ds *dataset.Dataset) (*FactorSweep, error) {
	sweep := &FactorSweep{RunID: uuid.New()}

	for _, factor := range ds.Factors() {
		returns, ok := ds.FactorReturns(factor)
		if !ok {
			return nil, fmt.Errorf("factor %q has no return series", factor)
		}
		log := a.logger.WithField("factor", factor)
		log.Info("Analyzing factor drawdowns")

		daily, err := a.CrashFlags(returns, 1, MethodHistorical)
		if err != nil {
			return nil, fmt.Errorf("daily crash flags for %q: %w", factor, err)
		}
		weekly, err := a.CrashFlags(returns, weeklyWindow, MethodHistorical)
		if err != nil {
			return nil, fmt.Errorf("weekly crash flags for %q: %w", factor, err)
		}

		episodes := a.Episodes(returns)
		metrics.RecordEpisodes(len(episodes))

		sweep.Reports = append(sweep.Reports, FactorReport{
			Factor:        factor,
			Drawdown:      a.Drawdown(returns),
			DailyCrashes:  daily,
			WeeklyCrashes: weekly,
			Episodes:      episodes,
			MaxDrawdown:   a.MaxDrawdown(returns),
		})
	}

	metrics.RecordAnalysisRun()
	return sweep, nil
}
