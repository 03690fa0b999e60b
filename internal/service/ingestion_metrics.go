package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about a dataset ingestion run
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalRows        int
	IngestedRecords  int
	ExcludedStatuses int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalRows = 0
	m.IngestedRecords = 0
	m.ExcludedStatuses = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordRows adds to the total row count
func (m *IngestionMetrics) RecordRows(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TotalRows += count
}

// RecordIngested increments the ingested record count
func (m *IngestionMetrics) RecordIngested(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IngestedRecords += count
}

// RecordExcludedStatus increments the excluded-status count
func (m *IngestionMetrics) RecordExcludedStatus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExcludedStatuses++
}

// RecordValidationError increments the validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments the error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Snapshot returns a copy safe to read without the lock
func (m *IngestionMetrics) Snapshot() IngestionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return IngestionMetrics{
		StartTime:        m.StartTime,
		Duration:         m.Duration,
		TotalRows:        m.TotalRows,
		IngestedRecords:  m.IngestedRecords,
		ExcludedStatuses: m.ExcludedStatuses,
		ValidationErrors: m.ValidationErrors,
		Errors:           m.Errors,
	}
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ingestRate := float64(0)
	if m.TotalRows > 0 {
		ingestRate = float64(m.IngestedRecords) / float64(m.TotalRows) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Rows=%d, Ingested=%d (%.1f%%), ExcludedStatuses=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalRows,
		m.IngestedRecords,
		ingestRate,
		m.ExcludedStatuses,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
