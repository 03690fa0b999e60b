package models

import (
	"time"
)

// Frequency represents the spacing unit between forecast time points
type Frequency string

const (
	FrequencyDays   Frequency = "DAYS"
	FrequencyWeeks  Frequency = "WEEKS"
	FrequencyMonths Frequency = "MONTHS"
)

// IsValid reports whether the frequency is a supported unit
func (f Frequency) IsValid() bool {
	return f == FrequencyDays || f == FrequencyWeeks || f == FrequencyMonths
}

// ForecastOutcome represents the simulated result of a future bid
type ForecastOutcome string

const (
	OutcomeWin  ForecastOutcome = "WIN"
	OutcomeLoss ForecastOutcome = "LOSS"
)

// ForecastRequest describes one forecast simulation run
type ForecastRequest struct {
	StartDate    time.Time  `json:"start_date" validate:"required"`
	PeriodCount  int        `json:"period_count" validate:"required,gte=1"`
	Frequency    Frequency  `json:"frequency" validate:"required,oneof=DAYS WEEKS MONTHS"`
	ClientType   ClientType `json:"client_type" validate:"required,oneof=EXISTING NEW"`
	WinThreshold float64    `json:"win_threshold" validate:"gte=0,lte=1"`
	Seed         int64      `json:"seed"`
}

// SimulatedOutcome is one forecast row for a (category, time point) pair.
// Ephemeral: recomputed fresh on every request, never persisted.
type SimulatedOutcome struct {
	Category                string          `json:"category"` // display label
	Date                    time.Time       `json:"date"`
	ClientType              ClientType      `json:"client_type"`
	PredictedWinProbability float64         `json:"predicted_win_probability"` // rounded to 3 decimals
	PredictedAmount         float64         `json:"predicted_amount"`          // rounded to 2 decimals
	Result                  ForecastOutcome `json:"result"`
}
