package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/bidcast/internal/database"
	"github.com/yourusername/bidcast/internal/models"
)

const errScanBidRecord = "failed to scan bid record: %w"

const bidRecordColumns = `
	id, category, amount, percent_of, percent_of_scaled, status, client_type,
	city, state, bid_date, created_at, updated_at
`

// PostgresBidRecordRepository implements BidRecordRepository for PostgreSQL
type PostgresBidRecordRepository struct {
	db *database.DB
}

// NewPostgresBidRecordRepository creates a new bid record repository
func NewPostgresBidRecordRepository(db *database.DB) BidRecordRepository {
	return &PostgresBidRecordRepository{db: db}
}

// Create inserts a new bid record
func (r *PostgresBidRecordRepository) Create(ctx context.Context, record *models.BidRecord) error {
	query := `
		INSERT INTO bid_records (id, category, amount, percent_of, percent_of_scaled,
		                         status, client_type, city, state, bid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		record.ID, record.Category, record.Amount, record.PercentOf, record.PercentOfScaled,
		record.Status, record.ClientType, record.City, record.State, record.BidDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create bid record: %w", err)
	}

	return nil
}

// CreateBatch inserts a batch of bid records in a single transaction
func (r *PostgresBidRecordRepository) CreateBatch(ctx context.Context, records []*models.BidRecord) error {
	if len(records) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO bid_records (id, category, amount, percent_of, percent_of_scaled,
		                         status, client_type, city, state, bid_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, record := range records {
		batch.Queue(query,
			record.ID, record.Category, record.Amount, record.PercentOf, record.PercentOfScaled,
			record.Status, record.ClientType, record.City, record.State, record.BidDate,
		)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert bid record batch: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a bid record by ID
func (r *PostgresBidRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BidRecord, error) {
	query := `SELECT ` + bidRecordColumns + ` FROM bid_records WHERE id = $1`

	record := &models.BidRecord{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&record.ID, &record.Category, &record.Amount, &record.PercentOf, &record.PercentOfScaled,
		&record.Status, &record.ClientType, &record.City, &record.State, &record.BidDate,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bid record: %w", err)
	}

	return record, nil
}

// GetAll retrieves every valid-status bid record ordered by bid date
func (r *PostgresBidRecordRepository) GetAll(ctx context.Context) ([]*models.BidRecord, error) {
	query := `
		SELECT ` + bidRecordColumns + `
		FROM bid_records
		WHERE status IN ('WON', 'LOST')
		ORDER BY bid_date ASC, id ASC
	`

	return r.queryRecords(ctx, query)
}

// GetByClientType retrieves valid-status records for one client type
func (r *PostgresBidRecordRepository) GetByClientType(ctx context.Context, clientType models.ClientType) ([]*models.BidRecord, error) {
	query := `
		SELECT ` + bidRecordColumns + `
		FROM bid_records
		WHERE status IN ('WON', 'LOST') AND client_type = $1
		ORDER BY bid_date ASC, id ASC
	`

	return r.queryRecords(ctx, query, clientType)
}

// GetByCategory retrieves valid-status records for one project category
func (r *PostgresBidRecordRepository) GetByCategory(ctx context.Context, category models.ProjectCategory) ([]*models.BidRecord, error) {
	query := `
		SELECT ` + bidRecordColumns + `
		FROM bid_records
		WHERE status IN ('WON', 'LOST') AND category = $1
		ORDER BY bid_date ASC, id ASC
	`

	return r.queryRecords(ctx, query, category)
}

// CountByStatus returns the number of won and lost records
func (r *PostgresBidRecordRepository) CountByStatus(ctx context.Context) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'WON'),
			COUNT(*) FILTER (WHERE status = 'LOST')
		FROM bid_records
	`

	var won, lost int
	if err := r.db.GetPool().QueryRow(ctx, query).Scan(&won, &lost); err != nil {
		return 0, 0, fmt.Errorf("failed to count bid records: %w", err)
	}
	return won, lost, nil
}

// DeleteAll removes every bid record, used before a full dataset reload
func (r *PostgresBidRecordRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.GetPool().Exec(ctx, "DELETE FROM bid_records"); err != nil {
		return fmt.Errorf("failed to delete bid records: %w", err)
	}
	return nil
}

func (r *PostgresBidRecordRepository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*models.BidRecord, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bid records: %w", err)
	}
	defer rows.Close()

	var records []*models.BidRecord
	for rows.Next() {
		record := &models.BidRecord{}
		err := rows.Scan(
			&record.ID, &record.Category, &record.Amount, &record.PercentOf, &record.PercentOfScaled,
			&record.Status, &record.ClientType, &record.City, &record.State, &record.BidDate,
			&record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanBidRecord, err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
