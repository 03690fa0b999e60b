package forecast

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/yourusername/bidcast/internal/models"
)

func baseRequest() models.ForecastRequest {
	return models.ForecastRequest{
		StartDate:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodCount:  3,
		Frequency:    models.FrequencyMonths,
		ClientType:   models.ClientTypeExisting,
		WinThreshold: 0.5,
		Seed:         1,
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ForecastRequest)
	}{
		{"zero start date", func(r *models.ForecastRequest) { r.StartDate = time.Time{} }},
		{"zero periods", func(r *models.ForecastRequest) { r.PeriodCount = 0 }},
		{"negative periods", func(r *models.ForecastRequest) { r.PeriodCount = -1 }},
		{"bad frequency", func(r *models.ForecastRequest) { r.Frequency = "FORTNIGHTS" }},
		{"bad client type", func(r *models.ForecastRequest) { r.ClientType = "PROSPECT" }},
		{"threshold below range", func(r *models.ForecastRequest) { r.WinThreshold = -0.1 }},
		{"threshold above range", func(r *models.ForecastRequest) { r.WinThreshold = 1.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			err := ValidateRequest(req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, models.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}

	if err := ValidateRequest(baseRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestSchedule(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	months := Schedule(start, 3, models.FrequencyMonths)
	if len(months) != 3 {
		t.Fatalf("expected 3 points, got %d", len(months))
	}
	if !months[0].Equal(start) {
		t.Errorf("first point should equal start, got %s", months[0])
	}
	// Jan 31 + 1 month normalizes through the calendar
	if months[1] != start.AddDate(0, 1, 0) {
		t.Errorf("unexpected second month point: %s", months[1])
	}

	weeks := Schedule(start, 2, models.FrequencyWeeks)
	if got := weeks[1].Sub(weeks[0]); got != 7*24*time.Hour {
		t.Errorf("expected 7 day spacing, got %s", got)
	}

	days := Schedule(start, 2, models.FrequencyDays)
	if got := days[1].Sub(days[0]); got != 24*time.Hour {
		t.Errorf("expected 1 day spacing, got %s", got)
	}
}

func TestSimulate_RowCountAndOrder(t *testing.T) {
	profiles := map[models.ProjectCategory]models.WinProfile{
		models.CategoryCommercial: {Category: models.CategoryCommercial, AvgAmount: 500000, WinRate: 0.5, RecordCount: 10},
		models.CategoryRenovation: {Category: models.CategoryRenovation, AvgAmount: 80000, WinRate: 0.7, RecordCount: 5},
	}

	req := baseRequest()
	req.PeriodCount = 4

	outcomes, err := Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(req.Seed)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(outcomes) != 8 {
		t.Fatalf("expected 8 rows (2 categories x 4 periods), got %d", len(outcomes))
	}

	// Category-major order, categories in their defined order
	for i := 0; i < 4; i++ {
		if outcomes[i].Category != models.CategoryCommercial.Label() {
			t.Fatalf("row %d: expected Commercial, got %s", i, outcomes[i].Category)
		}
	}
	for i := 4; i < 8; i++ {
		if outcomes[i].Category != models.CategoryRenovation.Label() {
			t.Fatalf("row %d: expected Renovation, got %s", i, outcomes[i].Category)
		}
	}

	schedule := Schedule(req.StartDate, req.PeriodCount, req.Frequency)
	for i, outcome := range outcomes {
		if !outcome.Date.Equal(schedule[i%4]) {
			t.Fatalf("row %d has wrong date %s", i, outcome.Date)
		}
		if outcome.ClientType != req.ClientType {
			t.Fatalf("row %d has wrong client type %s", i, outcome.ClientType)
		}
	}
}

func TestSimulate_SkipsAbsentCategories(t *testing.T) {
	profiles := map[models.ProjectCategory]models.WinProfile{
		models.CategoryIndustrial: {Category: models.CategoryIndustrial, AvgAmount: 1000000, WinRate: 0.4, RecordCount: 3},
	}

	outcomes, err := Simulate(baseRequest(), profiles, DefaultForecastConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 rows for single category, got %d", len(outcomes))
	}
}

func TestSimulate_ThresholdExtremes(t *testing.T) {
	profiles := map[models.ProjectCategory]models.WinProfile{
		models.CategoryCommercial: {Category: models.CategoryCommercial, AvgAmount: 500000, WinRate: 0.5, RecordCount: 10},
	}

	req := baseRequest()
	req.PeriodCount = 50

	// Probability is clamped to [0,1], so threshold 0 always wins
	req.WinThreshold = 0
	outcomes, err := Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, outcome := range outcomes {
		if outcome.Result != models.OutcomeWin {
			t.Fatalf("threshold 0 produced a loss (p=%g)", outcome.PredictedWinProbability)
		}
	}

	// Threshold 1 only wins on a clamped or exact 1.0 draw
	req.WinThreshold = 1
	outcomes, err = Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, outcome := range outcomes {
		if outcome.Result == models.OutcomeWin && outcome.PredictedWinProbability < 1 {
			t.Fatalf("threshold 1 won with probability %g", outcome.PredictedWinProbability)
		}
	}
}

func TestSimulate_ReproducibleForSeed(t *testing.T) {
	profiles := map[models.ProjectCategory]models.WinProfile{
		models.CategoryCommercial: {Category: models.CategoryCommercial, AvgAmount: 500000, WinRate: 0.5, RecordCount: 10},
		models.CategoryIndustrial: {Category: models.CategoryIndustrial, AvgAmount: 2000000, WinRate: 0.3, RecordCount: 8},
	}

	req := baseRequest()
	req.PeriodCount = 12

	first, err := Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d diverges: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSimulate_AmountsNearProfileAverage(t *testing.T) {
	avg := 1000000.0
	profiles := map[models.ProjectCategory]models.WinProfile{
		models.CategoryCommercial: {Category: models.CategoryCommercial, AvgAmount: avg, WinRate: 0.6, RecordCount: 20},
	}

	req := baseRequest()
	req.PeriodCount = 200

	outcomes, err := Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sd := DefaultAmountStdDevFactor * avg
	for _, outcome := range outcomes {
		if math.Abs(outcome.PredictedAmount-avg) > 6*sd {
			t.Fatalf("amount %g implausibly far from average %g", outcome.PredictedAmount, avg)
		}
	}
}

func TestSimulate_RoundingAndClamping(t *testing.T) {
	profiles := map[models.ProjectCategory]models.WinProfile{
		models.CategoryCommercial: {Category: models.CategoryCommercial, AvgAmount: 500000, WinRate: 0.95, RecordCount: 10},
	}

	req := baseRequest()
	req.PeriodCount = 100

	outcomes, err := Simulate(req, profiles, DefaultForecastConfig(), rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, outcome := range outcomes {
		p := outcome.PredictedWinProbability
		if p < 0 || p > 1 {
			t.Fatalf("probability out of bounds: %g", p)
		}
		if math.Abs(p*1000-math.Round(p*1000)) > 1e-9 {
			t.Fatalf("probability not rounded to 3 decimals: %g", p)
		}
		a := outcome.PredictedAmount
		if math.Abs(a*100-math.Round(a*100)) > 1e-6 {
			t.Fatalf("amount not rounded to 2 decimals: %g", a)
		}
	}
}
