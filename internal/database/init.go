package database

import (
	"context"
	"fmt"

	"github.com/yourusername/bidcast/internal/config"
)

// Initialize creates a database connection pool and verifies the bid_records
// schema is present.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	var tableName string
	err = db.pool.QueryRow(ctx, "SELECT tablename FROM pg_tables WHERE tablename = 'bid_records'").Scan(&tableName)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf(
			"bid_records table not found; run database migrations before starting: %w", err,
		)
	}

	return db, nil
}
