package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bidcast/internal/models"
)

func testRecord(category models.ProjectCategory, status models.BidStatus, bidDate time.Time) *models.BidRecord {
	return &models.BidRecord{
		ID:         uuid.New(),
		Category:   category,
		Amount:     500000,
		PercentOf:  9.5,
		Status:     status,
		ClientType: models.ClientTypeExisting,
		City:       "Columbus",
		State:      "OH",
		BidDate:    bidDate,
	}
}

func TestMemoryRepository_CreateAndGetByID(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	record := testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now())
	require.NoError(t, repo.Create(ctx, record))

	found, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, found.ID)
	assert.Equal(t, record.Category, found.Category)
	assert.Equal(t, record.Amount, found.Amount)
}

func TestMemoryRepository_CreateDuplicate(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	record := testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now())
	require.NoError(t, repo.Create(ctx, record))

	err := repo.Create(ctx, record)
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
}

func TestMemoryRepository_GetByIDNotFound(t *testing.T) {
	repo := NewMemoryBidRecordRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryRepository_GetAllOrderedByBidDate(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	newest := testRecord(models.CategoryCommercial, models.BidStatusWon, base.AddDate(0, 2, 0))
	oldest := testRecord(models.CategoryIndustrial, models.BidStatusLost, base)
	middle := testRecord(models.CategoryResidential, models.BidStatusWon, base.AddDate(0, 1, 0))

	require.NoError(t, repo.CreateBatch(ctx, []*models.BidRecord{newest, oldest, middle}))

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, oldest.ID, records[0].ID)
	assert.Equal(t, middle.ID, records[1].ID)
	assert.Equal(t, newest.ID, records[2].ID)
}

func TestMemoryRepository_GetByClientType(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	existing := testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now())
	newClient := testRecord(models.CategoryCommercial, models.BidStatusLost, time.Now())
	newClient.ClientType = models.ClientTypeNew

	require.NoError(t, repo.CreateBatch(ctx, []*models.BidRecord{existing, newClient}))

	records, err := repo.GetByClientType(ctx, models.ClientTypeNew)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, newClient.ID, records[0].ID)
}

func TestMemoryRepository_GetByCategory(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	commercial := testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now())
	industrial := testRecord(models.CategoryIndustrial, models.BidStatusWon, time.Now())

	require.NoError(t, repo.CreateBatch(ctx, []*models.BidRecord{commercial, industrial}))

	records, err := repo.GetByCategory(ctx, models.CategoryIndustrial)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, industrial.ID, records[0].ID)
}

func TestMemoryRepository_CountByStatus(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	records := []*models.BidRecord{
		testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now()),
		testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now()),
		testRecord(models.CategoryIndustrial, models.BidStatusLost, time.Now()),
	}
	require.NoError(t, repo.CreateBatch(ctx, records))

	won, lost, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, won)
	assert.Equal(t, 1, lost)
}

func TestMemoryRepository_DeleteAll(t *testing.T) {
	repo := NewMemoryBidRecordRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testRecord(models.CategoryCommercial, models.BidStatusWon, time.Now())))
	require.NoError(t, repo.DeleteAll(ctx))

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
