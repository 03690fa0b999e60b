package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/bidcast/internal/models"
)

// BidRecordRepository defines the interface for historical bid record access.
// Only records with a Won or Lost status are ever returned; rows carrying any
// other source status are excluded at ingestion time.
type BidRecordRepository interface {
	Create(ctx context.Context, record *models.BidRecord) error
	CreateBatch(ctx context.Context, records []*models.BidRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BidRecord, error)
	GetAll(ctx context.Context) ([]*models.BidRecord, error)
	GetByClientType(ctx context.Context, clientType models.ClientType) ([]*models.BidRecord, error)
	GetByCategory(ctx context.Context, category models.ProjectCategory) ([]*models.BidRecord, error)
	CountByStatus(ctx context.Context) (won int, lost int, err error)
	DeleteAll(ctx context.Context) error
}
