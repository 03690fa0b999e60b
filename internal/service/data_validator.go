package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/bidcast/internal/models"
)

// DataValidator validates normalized bid records before persistence
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	return &DataValidator{logger: logger}
}

// ValidateRecord validates a bid record for required fields and constraints
func (v *DataValidator) ValidateRecord(record *models.BidRecord) []string {
	var errors []string

	if !record.Category.IsValid() {
		errors = append(errors, fmt.Sprintf("unknown category %q", record.Category))
	}

	if record.Amount <= 0 {
		errors = append(errors, fmt.Sprintf("amount must be positive, got %.2f", record.Amount))
	}

	if record.PercentOf < 0 {
		errors = append(errors, fmt.Sprintf("percent_of cannot be negative, got %.2f", record.PercentOf))
	}

	if record.PercentOf > 100 {
		errors = append(errors, fmt.Sprintf("percent_of out of range (0-100), got %.2f", record.PercentOf))
	}

	if !record.Status.IsValid() {
		errors = append(errors, fmt.Sprintf("status must be WON or LOST, got %q", record.Status))
	}

	if !record.ClientType.IsValid() {
		errors = append(errors, fmt.Sprintf("client_type must be EXISTING or NEW, got %q", record.ClientType))
	}

	if record.BidDate.IsZero() {
		errors = append(errors, "bid_date is required")
	} else if record.BidDate.After(time.Now().Add(24 * time.Hour)) {
		errors = append(errors, fmt.Sprintf("bid_date is in the future: %s", record.BidDate.Format("2006-01-02")))
	}

	return errors
}
