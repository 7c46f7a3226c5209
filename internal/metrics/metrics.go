// Package metrics provides the centralized Prometheus metrics registry for
// the crowding analysis pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysisRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "factor_crowding",
		Name:      "analysis_runs_total",
		Help:      "Total number of completed drawdown analysis runs",
	})
	EpisodesDetectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "factor_crowding",
		Name:      "episodes_detected_total",
		Help:      "Total number of drawdown episodes detected",
	})
	CrashFlagsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "factor_crowding",
		Name:      "crash_flags_total",
		Help:      "Total number of timestamps flagged as crash events",
	})
	ProxyComponentsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "factor_crowding",
		Name:      "proxy_components_total",
		Help:      "Total number of crowding proxy components built",
	}, []string{"proxy_set"})
	CompositesBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "factor_crowding",
		Name:      "composites_built_total",
		Help:      "Total number of composite crowding indices built",
	})
)

// Gauge metrics
var (
	LastCompositeComponents = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "factor_crowding",
		Name:      "last_composite_components",
		Help:      "Number of component columns feeding the most recent composite",
	})
	DatasetRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "factor_crowding",
		Name:      "dataset_rows",
		Help:      "Row count of the aligned analysis table",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(AnalysisRunsTotal)
		registry.MustRegister(EpisodesDetectedTotal)
		registry.MustRegister(CrashFlagsTotal)
		registry.MustRegister(ProxyComponentsTotal)
		registry.MustRegister(CompositesBuiltTotal)

		registry.MustRegister(LastCompositeComponents)
		registry.MustRegister(DatasetRows)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAnalysisRun records a completed analysis run.
func RecordAnalysisRun() {
	AnalysisRunsTotal.Inc()
}

// RecordEpisodes records detected drawdown episodes.
func RecordEpisodes(count int) {
	EpisodesDetectedTotal.Add(float64(count))
}

// RecordCrashFlags records flagged crash timestamps.
func RecordCrashFlags(count int) {
	CrashFlagsTotal.Add(float64(count))
}

// RecordProxyComponents records components built for one proxy set.
func RecordProxyComponents(proxySet string, count int) {
	ProxyComponentsTotal.WithLabelValues(proxySet).Add(float64(count))
}

// RecordComposite records a built composite and its component count.
func RecordComposite(components int) {
	CompositesBuiltTotal.Inc()
	LastCompositeComponents.Set(float64(components))
}

// UpdateDatasetRows updates the aligned table row gauge.
func UpdateDatasetRows(rows int) {
	DatasetRows.Set(float64(rows))
}
