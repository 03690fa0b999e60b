package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// CSVHTTPSource implements DataSource for a bid-history CSV served over HTTP,
// such as a nightly export from an estimating system.
type CSVHTTPSource struct {
	httpClient *RateLimitedHTTPClient
	name       string
	url        string
	apiKey     string
	enabled    bool
	logger     *logrus.Logger
}

// NewCSVHTTPSource creates a data source fetching a CSV export over HTTP
func NewCSVHTTPSource(httpClient *RateLimitedHTTPClient, name, url, apiKey string, enabled bool, logger *logrus.Logger) *CSVHTTPSource {
	return &CSVHTTPSource{
		httpClient: httpClient,
		name:       name,
		url:        url,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchBids downloads and parses the remote CSV export
func (s *CSVHTTPSource) FetchBids(ctx context.Context) ([]BidRow, error) {
	if !s.enabled {
		return nil, NewDataSourceError(s.name, ErrCodeInvalidData, dataSourceDisabledMsg, nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, NewDataSourceError(s.name, ErrCodeNetworkError, "failed to create request", err)
	}

	if s.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(s.name, ErrCodeNetworkError, "failed to fetch bid export", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, NewDataSourceError(s.name, ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewDataSourceError(s.name, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewDataSourceError(s.name, ErrCodeNotFound, "bid export not found", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, NewDataSourceError(s.name, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	return parseBidRows(resp.Body, s.name, s.logger)
}

// Name returns the data source name
func (s *CSVHTTPSource) Name() string {
	return s.name
}

// IsEnabled returns whether this data source is enabled
func (s *CSVHTTPSource) IsEnabled() bool {
	return s.enabled
}
