package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/yourusername/bidcast/internal/models"
)

// ValidateRequest rejects malformed forecast requests before any simulation
// work happens. All failures wrap models.ErrInvalidParameter.
func ValidateRequest(req models.ForecastRequest) error {
	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", models.ErrInvalidParameter)
	}
	if req.PeriodCount < 1 {
		return fmt.Errorf("%w: period count must be at least 1, got %d", models.ErrInvalidParameter, req.PeriodCount)
	}
	if !req.Frequency.IsValid() {
		return fmt.Errorf("%w: unsupported frequency %q", models.ErrInvalidParameter, req.Frequency)
	}
	if !req.ClientType.IsValid() {
		return fmt.Errorf("%w: unsupported client type %q", models.ErrInvalidParameter, req.ClientType)
	}
	if req.WinThreshold < 0 || req.WinThreshold > 1 {
		return fmt.Errorf("%w: win threshold must be in [0,1], got %g", models.ErrInvalidParameter, req.WinThreshold)
	}
	return nil
}

// Schedule generates the forecast time points: periodCount points starting
// at start, spaced by one frequency unit. Months and weeks step through the
// calendar; days are exact.
func Schedule(start time.Time, periodCount int, frequency models.Frequency) []time.Time {
	points := make([]time.Time, 0, periodCount)
	for i := 0; i < periodCount; i++ {
		switch frequency {
		case models.FrequencyMonths:
			points = append(points, start.AddDate(0, i, 0))
		case models.FrequencyWeeks:
			points = append(points, start.AddDate(0, 0, 7*i))
		default:
			points = append(points, start.AddDate(0, 0, i))
		}
	}
	return points
}

// Simulate produces one simulated outcome per (category, time point) for
// every category that has a profile, iterating categories in their defined
// order so output is reproducible for a fixed generator state. For each row
// it draws the amount from N(avgAmount, factor*avgAmount) and the win
// probability from N(winRate, sd) clamped to [0,1]. The threshold comparison
// uses the pre-rounding probability; ties at the threshold resolve to Win.
func Simulate(req models.ForecastRequest, profiles map[models.ProjectCategory]models.WinProfile, cfg ForecastConfig, rng *rand.Rand) ([]models.SimulatedOutcome, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	schedule := Schedule(req.StartDate, req.PeriodCount, req.Frequency)
	outcomes := make([]models.SimulatedOutcome, 0, len(profiles)*len(schedule))

	for _, category := range models.AllCategories() {
		profile, ok := profiles[category]
		if !ok {
			// No historical records for this category; emit nothing.
			continue
		}
		for _, date := range schedule {
			amount := rng.NormFloat64()*(cfg.AmountStdDevFactor*profile.AvgAmount) + profile.AvgAmount
			probability := clamp01(rng.NormFloat64()*cfg.WinRateStdDev + profile.WinRate)

			result := models.OutcomeLoss
			if probability >= req.WinThreshold {
				result = models.OutcomeWin
			}

			outcomes = append(outcomes, models.SimulatedOutcome{
				Category:                category.Label(),
				Date:                    date,
				ClientType:              req.ClientType,
				PredictedWinProbability: round3(probability),
				PredictedAmount:         round2(amount),
				Result:                  result,
			})
		}
	}

	return outcomes, nil
}

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
