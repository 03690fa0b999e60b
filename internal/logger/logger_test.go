package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	log := NewLogger("not-a-level")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerDebugLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestForecastLoggerRun(t *testing.T) {
	log, buf := setupTestLogger()
	forecastLogger := NewForecastLogger(log)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	forecastLogger.LogForecastRun(start, 12, "MONTHS", "EXISTING", 0.5, 36, 25*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "forecast", entry["component"])
	assert.Equal(t, "2025-03-01", entry["start_date"])
	assert.Equal(t, float64(12), entry["period_count"])
	assert.Equal(t, float64(36), entry["rows"])
}

func TestForecastLoggerOHPEstimate(t *testing.T) {
	log, buf := setupTestLogger()
	forecastLogger := NewForecastLogger(log)

	forecastLogger.LogOHPEstimate(1000000, 8.25, 82500, 120)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(1000000), entry["target_amount"])
	assert.Equal(t, 8.25, entry["predicted_percent"])
	assert.Equal(t, float64(120), entry["sample_size"])
}

func TestForecastLoggerTrainingRun(t *testing.T) {
	log, buf := setupTestLogger()
	forecastLogger := NewForecastLogger(log)

	forecastLogger.LogTrainingRun(42, 80, "model-1")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(42), entry["seed"])
	assert.Equal(t, float64(80), entry["sample_size"])
	assert.Equal(t, "model-1", entry["model_id"])
}
