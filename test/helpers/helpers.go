// Package helpers provides shared utilities for integration and e2e tests.
package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bidcast/internal/models"
)

// SampleCSVHeader is the column layout of a bid-history export.
const SampleCSVHeader = "category,amount,percent_of,status,client_type,city,state,bid_date"

// SampleCSVRows is a small bid-history export covering every category, both
// outcomes and a couple of rows the pipeline must reject.
var SampleCSVRows = []string{
	`Commercial,"$1,250,000.00",9.50,Won,Existing,Columbus,OH,2023-01-15`,
	`Commercial,820000,11.00,Lost,New,Cleveland,OH,2023-02-03`,
	`Industrial,4750000,6.25,Won,Existing,Toledo,OH,2023-02-18`,
	`Industrial,2100000,8.00,Lost,Existing,Akron,OH,2023-03-07`,
	`Institutional,3300000,7.50,Won,New,Dayton,OH,2023-03-22`,
	`Institutional,990000,10.25,Lost,Existing,Columbus,OH,2023-04-11`,
	`Residential,450000,13.00,Won,New,Cincinnati,OH,2023-05-02`,
	`Residential,610000,12.50,Lost,New,Columbus,OH,2023-05-19`,
	`Heavy Civil,8900000,5.00,Won,Existing,Toledo,OH,2023-06-08`,
	`Heavy Civil,12500000,4.50,Lost,Existing,Cleveland,OH,2023-06-30`,
	`Renovation,175000,15.50,Won,Existing,Dayton,OH,2023-07-14`,
	`Renovation,240000,14.00,Lost,New,Akron,OH,2023-08-01`,
	`Commercial,1500000,9.00,Pending,Existing,Columbus,OH,2023-08-20`,
	`Commercial,not-a-number,9.00,Won,Existing,Columbus,OH,2023-09-05`,
}

// SampleCSV returns the full sample export as a single string.
func SampleCSV() string {
	return SampleCSVHeader + "\n" + strings.Join(SampleCSVRows, "\n") + "\n"
}

// WriteSampleCSV writes the sample export to a temp file and returns its path.
func WriteSampleCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bids.csv")
	require.NoError(t, os.WriteFile(path, []byte(SampleCSV()), 0o644))
	return path
}

// MockCSVServer serves the sample export over HTTP, requiring the given
// bearer token when apiKey is non-empty.
func MockCSVServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey != "" && r.Header.Get("Authorization") != "Bearer "+apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, SampleCSV())
	})

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

// MakeBidRecords generates a synthetic valid-status dataset with won and lost
// records spread over the categories.
func MakeBidRecords(t *testing.T, count int) []*models.BidRecord {
	t.Helper()

	categories := models.AllCategories()
	records := make([]*models.BidRecord, 0, count)
	for i := 0; i < count; i++ {
		status := models.BidStatusWon
		if i%2 == 1 {
			status = models.BidStatusLost
		}
		records = append(records, &models.BidRecord{
			ID:         uuid.New(),
			Category:   categories[i%len(categories)],
			Amount:     float64(100000 + i*50000),
			PercentOf:  15 - float64(i%10),
			Status:     status,
			ClientType: models.ClientTypeExisting,
			City:       "Columbus",
			State:      "OH",
			BidDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		})
	}
	return records
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}

// SkipIfNoDatabase skips test unless a test database is configured.
func SkipIfNoDatabase(t *testing.T) {
	if os.Getenv("TEST_DATABASE_HOST") == "" {
		t.Skip("skipping test - TEST_DATABASE_HOST not set")
	}
}
