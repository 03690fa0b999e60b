// Package metrics provides the centralized Prometheus metrics registry for
// the estimating and forecast engine.
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
	ForecastRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "forecast_runs_total",
		Help:      "Total number of forecast simulations executed",
	})
	SimulatedOutcomesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "simulated_outcomes_total",
		Help:      "Total number of simulated outcome rows produced",
	})
	RegressionFitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "regression_fits_total",
		Help:      "Total number of OH&P regression fits",
	})
	TrainingRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "training_runs_total",
		Help:      "Total number of balanced-model training runs",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "cache_hits_total",
		Help:      "Total number of memoized result cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "cache_misses_total",
		Help:      "Total number of memoized result cache misses",
	})
	RecordsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "records_ingested_total",
		Help:      "Total number of historical bid records ingested",
	})
	RecordsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bidcast",
		Name:      "records_rejected_total",
		Help:      "Total number of source rows rejected during ingestion",
	})
)

// Gauge metrics
var (
	DatasetRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "bidcast",
		Name:      "dataset_records",
		Help:      "Number of historical records in the loaded dataset",
	})
	CategoryWinRate = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bidcast",
		Name:      "category_win_rate",
		Help:      "Historical win rate per project category",
	}, []string{"category"})
)

// Histogram metrics
var (
	ForecastDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bidcast",
		Name:      "forecast_duration_seconds",
		Help:      "Duration of forecast simulations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	RegressionFitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bidcast",
		Name:      "regression_fit_duration_seconds",
		Help:      "Duration of OH&P regression fits in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "bidcast",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of dataset ingestion runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ForecastRunsTotal)
		registry.MustRegister(SimulatedOutcomesTotal)
		registry.MustRegister(RegressionFitsTotal)
		registry.MustRegister(TrainingRunsTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)
		registry.MustRegister(RecordsIngestedTotal)
		registry.MustRegister(RecordsRejectedTotal)

		// Register gauge metrics
		registry.MustRegister(DatasetRecords)
		registry.MustRegister(CategoryWinRate)

		// Register histogram metrics
		registry.MustRegister(ForecastDuration)
		registry.MustRegister(RegressionFitDuration)
		registry.MustRegister(IngestionDuration)
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

// RecordForecastRun records a completed forecast simulation.
func RecordForecastRun(durationSeconds float64) {
	ForecastRunsTotal.Inc()
	ForecastDuration.Observe(durationSeconds)
}

// RecordSimulatedOutcomes records the number of rows a simulation produced.
func RecordSimulatedOutcomes(count float64) {
	SimulatedOutcomesTotal.Add(count)
}

// RecordRegressionFit records a completed OH&P regression fit.
func RecordRegressionFit(durationSeconds float64) {
	RegressionFitsTotal.Inc()
	RegressionFitDuration.Observe(durationSeconds)
}

// RecordTrainingRun records a balanced-model training run.
func RecordTrainingRun() {
	TrainingRunsTotal.Inc()
}

// RecordCacheHit records a memoized result cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a memoized result cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// UpdateDatasetSize updates the loaded dataset size gauge.
func UpdateDatasetSize(count float64) {
	DatasetRecords.Set(count)
}

// UpdateCategoryWinRate updates the per-category win rate gauge.
func UpdateCategoryWinRate(category string, rate float64) {
	CategoryWinRate.WithLabelValues(category).Set(rate)
}

// RecordRecordsIngested records persisted historical records.
func RecordRecordsIngested(count float64) {
	RecordsIngestedTotal.Add(count)
}

// RecordRecordsRejected records rejected source rows.
func RecordRecordsRejected(count float64) {
	RecordsRejectedTotal.Add(count)
}

// RecordIngestionDuration records an ingestion run duration.
func RecordIngestionDuration(durationSeconds float64) {
	IngestionDuration.Observe(durationSeconds)
}
