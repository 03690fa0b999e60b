package forecast

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/yourusername/bidcast/internal/models"
)

func balancedSample(t *testing.T) models.BalancedSample {
	t.Helper()
	records := []*models.BidRecord{
		{Category: models.CategoryCommercial, Amount: 100000, PercentOfScaled: 0.9, Status: models.BidStatusWon},
		{Category: models.CategoryCommercial, Amount: 150000, PercentOfScaled: 0.8, Status: models.BidStatusWon},
		{Category: models.CategoryIndustrial, Amount: 5000000, PercentOfScaled: 0.1, Status: models.BidStatusLost},
		{Category: models.CategoryIndustrial, Amount: 8000000, PercentOfScaled: 0.2, Status: models.BidStatusLost},
	}
	sample := Balance(records, rand.New(rand.NewSource(1)))
	sample.Seed = 1
	return sample
}

func TestTrainModels(t *testing.T) {
	trained, err := TrainModels(balancedSample(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trained.SampleSize != 4 {
		t.Errorf("expected sample size 4, got %d", trained.SampleSize)
	}
	if trained.Seed != 1 {
		t.Errorf("expected seed 1, got %d", trained.Seed)
	}
	if trained.Classifier == nil || trained.Regressor == nil {
		t.Fatal("expected both classifier and regressor")
	}

	// Small high-margin bids were won; large low-margin bids were lost
	won := &models.BidRecord{Amount: 120000, PercentOfScaled: 0.85}
	lost := &models.BidRecord{Amount: 6000000, PercentOfScaled: 0.15}
	if !trained.Classifier.PredictWin(won) {
		t.Error("expected win prediction for small high-margin bid")
	}
	if trained.Classifier.PredictWin(lost) {
		t.Error("expected loss prediction for large low-margin bid")
	}

	// Scaled margin declines with amount in this sample
	if trained.Regressor.Slope >= 0 {
		t.Errorf("expected negative regressor slope, got %g", trained.Regressor.Slope)
	}
}

func TestTrainModels_EmptySample(t *testing.T) {
	_, err := TrainModels(models.BalancedSample{})
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestTrainModels_SingleClass(t *testing.T) {
	sample := models.BalancedSample{Records: []*models.BidRecord{
		{Amount: 100000, PercentOfScaled: 0.5, Status: models.BidStatusWon},
		{Amount: 200000, PercentOfScaled: 0.6, Status: models.BidStatusWon},
	}}

	_, err := TrainModels(sample)
	if !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestTrainModels_DegenerateAmounts(t *testing.T) {
	sample := models.BalancedSample{Records: []*models.BidRecord{
		{Amount: 100000, PercentOfScaled: 0.4, Status: models.BidStatusWon},
		{Amount: 100000, PercentOfScaled: 0.6, Status: models.BidStatusLost},
	}}

	trained, err := TrainModels(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flat-line fallback at the mean scaled percent
	if trained.Regressor.Slope != 0 {
		t.Errorf("expected zero slope, got %g", trained.Regressor.Slope)
	}
	if got := trained.Regressor.PredictScaledPercent(100000); got != 0.5 {
		t.Errorf("expected flat prediction 0.5, got %g", got)
	}
}
