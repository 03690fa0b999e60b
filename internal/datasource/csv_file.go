package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// CSVFileSource implements DataSource for a local bid-history CSV export
type CSVFileSource struct {
	name    string
	path    string
	enabled bool
	logger  *logrus.Logger
}

// NewCSVFileSource creates a data source reading from a local CSV file
func NewCSVFileSource(name, path string, enabled bool, logger *logrus.Logger) *CSVFileSource {
	return &CSVFileSource{
		name:    name,
		path:    path,
		enabled: enabled,
		logger:  logger,
	}
}

// FetchBids reads and parses every row of the CSV file
func (s *CSVFileSource) FetchBids(ctx context.Context) ([]BidRow, error) {
	if !s.enabled {
		return nil, NewDataSourceError(s.name, ErrCodeInvalidData, dataSourceDisabledMsg, nil)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, NewDataSourceError(s.name, ErrCodeNotFound,
			fmt.Sprintf("failed to open %s", s.path), err)
	}
	defer file.Close()

	return parseBidRows(file, s.name, s.logger)
}

// Name returns the data source name
func (s *CSVFileSource) Name() string {
	return s.name
}

// IsEnabled returns whether this data source is enabled
func (s *CSVFileSource) IsEnabled() bool {
	return s.enabled
}
