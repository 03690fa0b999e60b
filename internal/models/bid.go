package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectCategory represents the fixed set of project classifications
type ProjectCategory string

const (
	CategoryCommercial     ProjectCategory = "COMMERCIAL"
	CategoryIndustrial     ProjectCategory = "INDUSTRIAL"
	CategoryInstitutional  ProjectCategory = "INSTITUTIONAL"
	CategoryResidential    ProjectCategory = "RESIDENTIAL"
	CategoryInfrastructure ProjectCategory = "INFRASTRUCTURE"
	CategoryRenovation     ProjectCategory = "RENOVATION"
)

// AllCategories returns every project category in its defined order.
// Simulation output ordering depends on this order being stable.
func AllCategories() []ProjectCategory {
	return []ProjectCategory{
		CategoryCommercial,
		CategoryIndustrial,
		CategoryInstitutional,
		CategoryResidential,
		CategoryInfrastructure,
		CategoryRenovation,
	}
}

// Label returns the display label for the category
func (c ProjectCategory) Label() string {
	switch c {
	case CategoryCommercial:
		return "Commercial"
	case CategoryIndustrial:
		return "Industrial"
	case CategoryInstitutional:
		return "Institutional"
	case CategoryResidential:
		return "Residential"
	case CategoryInfrastructure:
		return "Infrastructure"
	case CategoryRenovation:
		return "Renovation"
	default:
		return string(c)
	}
}

// IsValid reports whether the category belongs to the enumerated set
func (c ProjectCategory) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// BidStatus represents the outcome of a historical bid (WON or LOST)
type BidStatus string

const (
	BidStatusWon  BidStatus = "WON"
	BidStatusLost BidStatus = "LOST"
)

// IsValid reports whether the status is one of the two outcome codes.
// Records carrying any other source status are excluded upstream.
func (s BidStatus) IsValid() bool {
	return s == BidStatusWon || s == BidStatusLost
}

// ClientType represents the relationship with the project client
type ClientType string

const (
	ClientTypeExisting ClientType = "EXISTING"
	ClientTypeNew      ClientType = "NEW"
)

// IsValid reports whether the client type is one of the known codes
func (t ClientType) IsValid() bool {
	return t == ClientTypeExisting || t == ClientTypeNew
}

// BidRecord represents one historical bid outcome
type BidRecord struct {
	ID              uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	Category        ProjectCategory `db:"category" json:"category" validate:"required"`
	Amount          float64         `db:"amount" json:"amount" validate:"required,gt=0"`
	PercentOf       float64         `db:"percent_of" json:"percent_of"` // raw OH&P percentage basis
	PercentOfScaled float64         `db:"percent_of_scaled" json:"percent_of_scaled"`
	Status          BidStatus       `db:"status" json:"status" validate:"required,oneof=WON LOST"`
	ClientType      ClientType      `db:"client_type" json:"client_type" validate:"required,oneof=EXISTING NEW"`
	City            string          `db:"city" json:"city"`
	State           string          `db:"state" json:"state"`
	BidDate         time.Time       `db:"bid_date" json:"bid_date"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// IsWon reports whether the bid was won
func (r *BidRecord) IsWon() bool {
	return r.Status == BidStatusWon
}
