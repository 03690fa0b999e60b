package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func TestForecastMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordForecastRun(0.05)
	})
	assert.NotPanics(t, func() {
		RecordSimulatedOutcomes(72)
	})
	assert.NotPanics(t, func() {
		RecordRegressionFit(0.002)
	})
	assert.NotPanics(t, func() {
		RecordTrainingRun()
	})
}

func TestCacheMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCacheHit()
		RecordCacheMiss()
	})
}

func TestDatasetMetrics(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count float64
	}{
		{"populated dataset", 1200},
		{"empty dataset", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateDatasetSize(tt.count)
			})
		})
	}

	assert.NotPanics(t, func() {
		UpdateCategoryWinRate("COMMERCIAL", 0.62)
	})
}

func TestIngestionMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRecordsIngested(500)
		RecordRecordsRejected(12)
		RecordIngestionDuration(3.5)
	})
}

func BenchmarkRecordForecastRun(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordForecastRun(0.05)
	}
}
