package repository

import (
	"fmt"

	"github.com/yourusername/bidcast/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	BidRecord BidRecordRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		BidRecord: NewPostgresBidRecordRepository(db),
	}, nil
}
