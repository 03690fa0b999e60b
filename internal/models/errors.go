package models

import "errors"

// Custom errors
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key violation")
	ErrDatasetNotLoaded = errors.New("historical dataset not loaded")
)
