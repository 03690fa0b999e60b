package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/bidcast/internal/datasource"
	"github.com/yourusername/bidcast/internal/models"
)

// DataNormalizer converts raw bid rows from any source into BidRecords with
// canonical category, status and client-type codes.
type DataNormalizer struct {
	categoryMap map[string]models.ProjectCategory
	logger      *logrus.Logger
}

// NewDataNormalizer creates a new data normalizer
func NewDataNormalizer(logger *logrus.Logger) *DataNormalizer {
	return &DataNormalizer{
		categoryMap: buildCategoryMap(),
		logger:      logger,
	}
}

// IsOutcomeStatus reports whether the raw status maps to a decided bid
// outcome. Rows in any other state (pending, withdrawn, no-bid) carry no
// outcome signal and are excluded from the dataset.
func (n *DataNormalizer) IsOutcomeStatus(status string) bool {
	_, ok := normalizeStatus(status)
	return ok
}

// NormalizeRow converts one raw bid row to a BidRecord
func (n *DataNormalizer) NormalizeRow(row datasource.BidRow) (*models.BidRecord, error) {
	status, ok := normalizeStatus(row.Status)
	if !ok {
		return nil, fmt.Errorf("status %q is not a decided outcome", row.Status)
	}

	category, err := n.normalizeCategory(row.Category)
	if err != nil {
		return nil, err
	}

	clientType, err := normalizeClientType(row.ClientType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.BidRecord{
		ID:         uuid.New(),
		Category:   category,
		Amount:     row.Amount.InexactFloat64(),
		PercentOf:  row.PercentOf.InexactFloat64(),
		Status:     status,
		ClientType: clientType,
		City:       strings.TrimSpace(row.City),
		State:      strings.ToUpper(strings.TrimSpace(row.State)),
		BidDate:    row.BidDate.UTC(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ScalePercentages computes the min-max scaled OH&P percentage across the
// whole dataset and stores it alongside the raw value. The raw percentage
// stays untouched for regression; the scaled one feeds model features.
func (n *DataNormalizer) ScalePercentages(records []*models.BidRecord) {
	if len(records) == 0 {
		return
	}

	min, max := records[0].PercentOf, records[0].PercentOf
	for _, record := range records[1:] {
		if record.PercentOf < min {
			min = record.PercentOf
		}
		if record.PercentOf > max {
			max = record.PercentOf
		}
	}

	span := max - min
	if span == 0 {
		for _, record := range records {
			record.PercentOfScaled = 0
		}
		return
	}

	for _, record := range records {
		record.PercentOfScaled = (record.PercentOf - min) / span
	}
}

func (n *DataNormalizer) normalizeCategory(raw string) (models.ProjectCategory, error) {
	key := strings.ToUpper(strings.TrimSpace(raw))
	if category, ok := n.categoryMap[key]; ok {
		return category, nil
	}
	return "", fmt.Errorf("unknown project category %q", raw)
}

func normalizeStatus(raw string) (models.BidStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "WON", "W", "AWARDED", "WIN":
		return models.BidStatusWon, true
	case "LOST", "L", "NOT AWARDED", "LOSS":
		return models.BidStatusLost, true
	default:
		return "", false
	}
}

func normalizeClientType(raw string) (models.ClientType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "EXISTING", "REPEAT", "CURRENT":
		return models.ClientTypeExisting, nil
	case "NEW":
		return models.ClientTypeNew, nil
	default:
		return "", fmt.Errorf("unknown client type %q", raw)
	}
}

// buildCategoryMap returns mapping of category name variations to the
// canonical project categories
func buildCategoryMap() map[string]models.ProjectCategory {
	return map[string]models.ProjectCategory{
		"COMMERCIAL":         models.CategoryCommercial,
		"COMM":               models.CategoryCommercial,
		"RETAIL":             models.CategoryCommercial,
		"OFFICE":             models.CategoryCommercial,
		"INDUSTRIAL":         models.CategoryIndustrial,
		"IND":                models.CategoryIndustrial,
		"MANUFACTURING":      models.CategoryIndustrial,
		"WAREHOUSE":          models.CategoryIndustrial,
		"INSTITUTIONAL":      models.CategoryInstitutional,
		"INST":               models.CategoryInstitutional,
		"EDUCATION":          models.CategoryInstitutional,
		"HEALTHCARE":         models.CategoryInstitutional,
		"GOVERNMENT":         models.CategoryInstitutional,
		"RESIDENTIAL":        models.CategoryResidential,
		"RES":                models.CategoryResidential,
		"MULTIFAMILY":        models.CategoryResidential,
		"INFRASTRUCTURE":     models.CategoryInfrastructure,
		"INFRA":              models.CategoryInfrastructure,
		"HEAVY CIVIL":        models.CategoryInfrastructure,
		"CIVIL":              models.CategoryInfrastructure,
		"RENOVATION":         models.CategoryRenovation,
		"RENO":               models.CategoryRenovation,
		"REMODEL":            models.CategoryRenovation,
		"TENANT IMPROVEMENT": models.CategoryRenovation,
	}
}
