package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/yourusername/bidcast/internal/models"
)

// MemoryBidRecordRepository is an in-memory BidRecordRepository used by tests
// and by CSV-only runs that have no database configured.
type MemoryBidRecordRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*models.BidRecord
}

// NewMemoryBidRecordRepository creates an empty in-memory repository
func NewMemoryBidRecordRepository() *MemoryBidRecordRepository {
	return &MemoryBidRecordRepository{
		records: make(map[uuid.UUID]*models.BidRecord),
	}
}

// Create stores a bid record
func (r *MemoryBidRecordRepository) Create(ctx context.Context, record *models.BidRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return models.ErrDuplicateKey
	}
	stored := *record
	r.records[record.ID] = &stored
	return nil
}

// CreateBatch stores a batch of bid records
func (r *MemoryBidRecordRepository) CreateBatch(ctx context.Context, records []*models.BidRecord) error {
	for _, record := range records {
		if err := r.Create(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a bid record by ID
func (r *MemoryBidRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BidRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	found := *record
	return &found, nil
}

// GetAll retrieves every valid-status bid record ordered by bid date
func (r *MemoryBidRecordRepository) GetAll(ctx context.Context) ([]*models.BidRecord, error) {
	return r.filter(func(record *models.BidRecord) bool {
		return true
	}), nil
}

// GetByClientType retrieves valid-status records for one client type
func (r *MemoryBidRecordRepository) GetByClientType(ctx context.Context, clientType models.ClientType) ([]*models.BidRecord, error) {
	return r.filter(func(record *models.BidRecord) bool {
		return record.ClientType == clientType
	}), nil
}

// GetByCategory retrieves valid-status records for one project category
func (r *MemoryBidRecordRepository) GetByCategory(ctx context.Context, category models.ProjectCategory) ([]*models.BidRecord, error) {
	return r.filter(func(record *models.BidRecord) bool {
		return record.Category == category
	}), nil
}

// CountByStatus returns the number of won and lost records
func (r *MemoryBidRecordRepository) CountByStatus(ctx context.Context) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var won, lost int
	for _, record := range r.records {
		switch record.Status {
		case models.BidStatusWon:
			won++
		case models.BidStatusLost:
			lost++
		}
	}
	return won, lost, nil
}

// DeleteAll removes every bid record
func (r *MemoryBidRecordRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make(map[uuid.UUID]*models.BidRecord)
	return nil
}

func (r *MemoryBidRecordRepository) filter(keep func(*models.BidRecord) bool) []*models.BidRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []*models.BidRecord
	for _, record := range r.records {
		if !record.Status.IsValid() || !keep(record) {
			continue
		}
		found := *record
		records = append(records, &found)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].BidDate.Equal(records[j].BidDate) {
			return records[i].ID.String() < records[j].ID.String()
		}
		return records[i].BidDate.Before(records[j].BidDate)
	})

	return records
}
