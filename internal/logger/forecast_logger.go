// Package logger provides domain logging for forecast and estimate runs.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ForecastLogger provides dedicated logging for engine operations.
type ForecastLogger struct {
	*logrus.Entry
}

// NewForecastLogger creates a new forecast logger.
func NewForecastLogger(baseLogger *logrus.Logger) *ForecastLogger {
	return &ForecastLogger{
		Entry: baseLogger.WithField("component", "forecast"),
	}
}

// LogForecastRun logs a completed forecast simulation.
func (fl *ForecastLogger) LogForecastRun(startDate time.Time, periodCount int, frequency string, clientType string, winThreshold float64, rows int, duration time.Duration) {
	fl.WithFields(logrus.Fields{
		"start_date":    startDate.Format("2006-01-02"),
		"period_count":  periodCount,
		"frequency":     frequency,
		"client_type":   clientType,
		"win_threshold": winThreshold,
		"rows":          rows,
		"duration_ms":   duration.Milliseconds(),
	}).Info("Forecast simulation completed")
}

// LogOHPEstimate logs an OH&P estimate query.
func (fl *ForecastLogger) LogOHPEstimate(targetAmount, predictedPercent, predictedDollarValue float64, sampleSize int) {
	fl.WithFields(logrus.Fields{
		"target_amount":          targetAmount,
		"predicted_percent":      predictedPercent,
		"predicted_dollar_value": predictedDollarValue,
		"sample_size":            sampleSize,
	}).Info("OH&P estimate computed")
}

// LogTrainingRun logs a balanced-model training run.
func (fl *ForecastLogger) LogTrainingRun(seed int64, sampleSize int, modelID string) {
	fl.WithFields(logrus.Fields{
		"seed":        seed,
		"sample_size": sampleSize,
		"model_id":    modelID,
	}).Info("Balanced model training completed")
}

// LogDatasetRefresh logs a dataset reload event.
func (fl *ForecastLogger) LogDatasetRefresh(source string, records int, rejected int, duration time.Duration) {
	fl.WithFields(logrus.Fields{
		"source":      source,
		"records":     records,
		"rejected":    rejected,
		"duration_ms": duration.Milliseconds(),
	}).Info("Historical dataset refreshed")
}
