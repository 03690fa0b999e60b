package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/bidcast/internal/datasource"
	"github.com/yourusername/bidcast/internal/metrics"
	"github.com/yourusername/bidcast/internal/models"
	"github.com/yourusername/bidcast/internal/repository"
)

// IngestionService handles the dataset ingestion workflow: fetch raw rows
// from every enabled source, normalize and validate them, then replace the
// stored dataset in one pass so percentage scaling covers all records.
type IngestionService struct {
	sources    []datasource.DataSource
	repo       repository.BidRecordRepository
	validator  *DataValidator
	normalizer *DataNormalizer
	metrics    *IngestionMetrics
	logger     *logrus.Logger
	batchSize  int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.DataSource,
	repo repository.BidRecordRepository,
	validator *DataValidator,
	normalizer *DataNormalizer,
	logger *logrus.Logger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &IngestionService{
		sources:    sources,
		repo:       repo,
		validator:  validator,
		normalizer: normalizer,
		metrics:    NewIngestionMetrics(),
		logger:     logger,
		batchSize:  batchSize,
	}
}

// IngestAll fetches, normalizes and persists bid history from every enabled
// source, replacing the previously stored dataset.
func (s *IngestionService) IngestAll(ctx context.Context) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	s.logger.WithField("sources", len(s.sources)).Info("Starting dataset ingestion")

	var records []*models.BidRecord
	for _, source := range s.sources {
		sourceRecords, err := s.ingestSource(ctx, source)
		if err != nil {
			s.metrics.RecordError()
			s.logger.WithFields(logrus.Fields{
				"source": source.Name(),
				"error":  err.Error(),
			}).Error("Failed to ingest from source")
			return s.metrics, fmt.Errorf("failed to ingest from %s: %w", source.Name(), err)
		}
		records = append(records, sourceRecords...)
	}

	// Scaling must see the combined dataset, not one source at a time
	s.normalizer.ScalePercentages(records)

	valid := s.filterValid(records)

	if err := s.replaceDataset(ctx, valid); err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}

	s.metrics.RecordIngested(len(valid))
	s.metrics.mu.Lock()
	s.metrics.Duration = time.Since(startTime)
	s.metrics.mu.Unlock()

	snapshot := s.metrics.Snapshot()
	metrics.RecordRecordsIngested(float64(snapshot.IngestedRecords))
	metrics.RecordRecordsRejected(float64(snapshot.ExcludedStatuses + snapshot.ValidationErrors))
	metrics.RecordIngestionDuration(snapshot.Duration.Seconds())

	s.logger.WithFields(logrus.Fields{
		"rows":              snapshot.TotalRows,
		"ingested":          snapshot.IngestedRecords,
		"excluded_statuses": snapshot.ExcludedStatuses,
		"validation_errors": snapshot.ValidationErrors,
		"duration":          snapshot.Duration.String(),
	}).Info("Dataset ingestion complete")

	return s.metrics, nil
}

// ingestSource fetches and normalizes rows from one source
func (s *IngestionService) ingestSource(ctx context.Context, source datasource.DataSource) ([]*models.BidRecord, error) {
	rows, err := source.FetchBids(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bids: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"source": source.Name(),
		"rows":   len(rows),
	}).Info("Fetched bid rows")
	s.metrics.RecordRows(len(rows))

	var records []*models.BidRecord
	for _, row := range rows {
		if !s.normalizer.IsOutcomeStatus(row.Status) {
			s.metrics.RecordExcludedStatus()
			continue
		}

		record, err := s.normalizer.NormalizeRow(row)
		if err != nil {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"source": source.Name(),
				"error":  err.Error(),
			}).Warn("Skipping row that failed normalization")
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// filterValid drops records that fail validation
func (s *IngestionService) filterValid(records []*models.BidRecord) []*models.BidRecord {
	valid := make([]*models.BidRecord, 0, len(records))
	for _, record := range records {
		if validationErrors := s.validator.ValidateRecord(record); len(validationErrors) > 0 {
			s.metrics.RecordValidationError()
			s.logger.WithFields(logrus.Fields{
				"record_id": record.ID.String(),
				"errors":    validationErrors,
			}).Warn("Skipping record that failed validation")
			continue
		}
		valid = append(valid, record)
	}
	return valid
}

// replaceDataset clears the stored dataset and writes the new records in batches
func (s *IngestionService) replaceDataset(ctx context.Context, records []*models.BidRecord) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear dataset: %w", err)
	}

	for i := 0; i < len(records); i += s.batchSize {
		end := i + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := s.repo.CreateBatch(ctx, records[i:end]); err != nil {
			return fmt.Errorf("failed to persist record batch: %w", err)
		}
	}

	return nil
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}
