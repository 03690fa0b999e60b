package datasource

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DataSource defines the interface for fetching historical bid data from a provider
type DataSource interface {
	// FetchBids retrieves every bid row the source exposes
	FetchBids(ctx context.Context) ([]BidRow, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// BidRow represents one raw bid-history row from any data source. Monetary and
// percentage columns are kept as decimals until normalization so parsing does
// not accumulate float error.
type BidRow struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	PercentOf  decimal.Decimal `json:"percent_of"`
	Status     string          `json:"status"`
	ClientType string          `json:"client_type"`
	City       string          `json:"city"`
	State      string          `json:"state"`
	BidDate    time.Time       `json:"bid_date"`
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

const dataSourceDisabledMsg = "data source is disabled"

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
