package datasource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bidcast/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

const sampleCSV = `category,amount,percent_of,status,client_type,city,state,bid_date
Commercial,"$1,250,000.00",9.5%,Won,Existing,Columbus,OH,2024-01-15
Industrial,480000,12.25,Lost,New,Dayton,OH,01/20/2024
Renovation,75000,15.0,Complete,Existing,Toledo,OH,2024-02-01
`

func TestParseBidRows(t *testing.T) {
	rows, err := parseBidRows(strings.NewReader(sampleCSV), "test", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "Commercial", first.Category)
	assert.Equal(t, "1250000", first.Amount.String())
	assert.Equal(t, "9.5", first.PercentOf.String())
	assert.Equal(t, "Won", first.Status)
	assert.Equal(t, "Existing", first.ClientType)
	assert.Equal(t, "Columbus", first.City)
	assert.Equal(t, "OH", first.State)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.BidDate)

	// US-style date in the second row
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), rows[1].BidDate)

	// Non-outcome statuses pass through; exclusion happens at normalization
	assert.Equal(t, "Complete", rows[2].Status)
}

func TestParseBidRows_SkipsUnparseableRows(t *testing.T) {
	csvData := `category,amount,percent_of,status,client_type,city,state,bid_date
Commercial,not-a-number,9.5,Won,Existing,Columbus,OH,2024-01-15
Industrial,480000,12.25,Lost,New,Dayton,OH,2024-01-20
`
	rows, err := parseBidRows(strings.NewReader(csvData), "test", testLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Industrial", rows[0].Category)
}

func TestParseBidRows_MissingColumn(t *testing.T) {
	csvData := `category,amount,status,client_type,bid_date
Commercial,100000,Won,Existing,2024-01-15
`
	_, err := parseBidRows(strings.NewReader(csvData), "test", testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "percent_of")
}

func TestCSVFileSource_FetchBids(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bids.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	source := NewCSVFileSource("history_export", path, true, testLogger())
	assert.Equal(t, "history_export", source.Name())
	assert.True(t, source.IsEnabled())

	rows, err := source.FetchBids(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestCSVFileSource_Disabled(t *testing.T) {
	source := NewCSVFileSource("history_export", "unused.csv", false, testLogger())

	_, err := source.FetchBids(context.Background())
	require.Error(t, err)

	var dsErr DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, "history_export", dsErr.Source)
}

func TestCSVFileSource_MissingFile(t *testing.T) {
	source := NewCSVFileSource("history_export", "/nonexistent/bids.csv", true, testLogger())

	_, err := source.FetchBids(context.Background())
	require.Error(t, err)

	var dsErr DataSourceError
	require.ErrorAs(t, err, &dsErr)
	assert.Equal(t, ErrCodeNotFound, dsErr.Code)
}

func TestFactory_NewDataSource(t *testing.T) {
	factory := NewFactory(testLogger())
	httpClient := NewRateLimitedHTTPClient(DefaultHTTPClientConfig(), testLogger())
	defer httpClient.Close()

	fileSource, err := factory.NewDataSource(config.DataSourceConfig{
		Name: "local", Type: "csv_file", Enabled: true, Path: "bids.csv",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "local", fileSource.Name())

	httpSource, err := factory.NewDataSource(config.DataSourceConfig{
		Name: "remote", Type: "csv_http", Enabled: true, URL: "https://example.com/bids.csv",
	}, httpClient)
	require.NoError(t, err)
	assert.Equal(t, "remote", httpSource.Name())

	_, err = factory.NewDataSource(config.DataSourceConfig{Name: "bad", Type: "ftp"}, nil)
	assert.Error(t, err)

	_, err = factory.NewDataSource(config.DataSourceConfig{Name: "nopath", Type: "csv_file"}, nil)
	assert.Error(t, err)
}

func TestFactory_NewDataSources_SkipsDisabled(t *testing.T) {
	factory := NewFactory(testLogger())

	sources, err := factory.NewDataSources(config.DatasetConfig{
		Sources: []config.DataSourceConfig{
			{Name: "on", Type: "csv_file", Enabled: true, Path: "a.csv"},
			{Name: "off", Type: "csv_file", Enabled: false, Path: "b.csv"},
		},
	}, nil)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "on", sources[0].Name())
}
