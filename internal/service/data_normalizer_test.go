package service

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bidcast/internal/datasource"
	"github.com/yourusername/bidcast/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func rawRow(category, status, clientType string) datasource.BidRow {
	return datasource.BidRow{
		Category:   category,
		Amount:     decimal.NewFromInt(750000),
		PercentOf:  decimal.NewFromFloat(10.5),
		Status:     status,
		ClientType: clientType,
		City:       " Columbus ",
		State:      "oh",
		BidDate:    time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeRow(t *testing.T) {
	normalizer := NewDataNormalizer(testLogger())

	record, err := normalizer.NormalizeRow(rawRow("Commercial", "Won", "Existing"))
	require.NoError(t, err)

	assert.Equal(t, models.CategoryCommercial, record.Category)
	assert.Equal(t, 750000.0, record.Amount)
	assert.Equal(t, 10.5, record.PercentOf)
	assert.Equal(t, models.BidStatusWon, record.Status)
	assert.Equal(t, models.ClientTypeExisting, record.ClientType)
	assert.Equal(t, "Columbus", record.City)
	assert.Equal(t, "OH", record.State)
	assert.NotEqual(t, record.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestNormalizeRow_CategoryAliases(t *testing.T) {
	normalizer := NewDataNormalizer(testLogger())

	cases := map[string]models.ProjectCategory{
		"heavy civil": models.CategoryInfrastructure,
		"RENO":        models.CategoryRenovation,
		"warehouse":   models.CategoryIndustrial,
		"Healthcare":  models.CategoryInstitutional,
	}

	for raw, want := range cases {
		record, err := normalizer.NormalizeRow(rawRow(raw, "Lost", "New"))
		require.NoError(t, err, "category %q", raw)
		assert.Equal(t, want, record.Category, "category %q", raw)
	}
}

func TestNormalizeRow_UnknownCategory(t *testing.T) {
	normalizer := NewDataNormalizer(testLogger())

	_, err := normalizer.NormalizeRow(rawRow("Aerospace", "Won", "Existing"))
	assert.Error(t, err)
}

func TestIsOutcomeStatus(t *testing.T) {
	normalizer := NewDataNormalizer(testLogger())

	assert.True(t, normalizer.IsOutcomeStatus("Won"))
	assert.True(t, normalizer.IsOutcomeStatus("not awarded"))
	assert.False(t, normalizer.IsOutcomeStatus("Pending"))
	assert.False(t, normalizer.IsOutcomeStatus("No Bid"))
	assert.False(t, normalizer.IsOutcomeStatus(""))
}

func TestScalePercentages(t *testing.T) {
	normalizer := NewDataNormalizer(testLogger())

	records := []*models.BidRecord{
		{PercentOf: 5},
		{PercentOf: 10},
		{PercentOf: 15},
	}
	normalizer.ScalePercentages(records)

	assert.Equal(t, 0.0, records[0].PercentOfScaled)
	assert.Equal(t, 0.5, records[1].PercentOfScaled)
	assert.Equal(t, 1.0, records[2].PercentOfScaled)

	// Raw values stay untouched
	assert.Equal(t, 5.0, records[0].PercentOf)
}

func TestScalePercentages_DegenerateSpan(t *testing.T) {
	normalizer := NewDataNormalizer(testLogger())

	records := []*models.BidRecord{{PercentOf: 8}, {PercentOf: 8}}
	normalizer.ScalePercentages(records)

	assert.Equal(t, 0.0, records[0].PercentOfScaled)
	assert.Equal(t, 0.0, records[1].PercentOfScaled)
}
