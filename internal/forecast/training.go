package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/bidcast/internal/models"
)

// TrainedModels is the opaque handle returned by balanced-model training.
// The classifier and regressor are trained on the balanced sample only and
// are not consumed by the forecast or OH&P paths.
type TrainedModels struct {
	ID         uuid.UUID       `json:"id"`
	TrainedAt  time.Time       `json:"trained_at"`
	Seed       int64           `json:"seed"`
	SampleSize int             `json:"sample_size"`
	Classifier *WinClassifier  `json:"classifier"`
	Regressor  *MarginRegressor `json:"regressor"`
}

// WinClassifier is a nearest-centroid classifier over (log amount, scaled
// percent) features, one centroid per outcome class.
type WinClassifier struct {
	WonCentroid  [2]float64 `json:"won_centroid"`
	LostCentroid [2]float64 `json:"lost_centroid"`
}

// PredictWin classifies a record by its closer class centroid
func (c *WinClassifier) PredictWin(record *models.BidRecord) bool {
	features := recordFeatures(record)
	return squaredDistance(features, c.WonCentroid) <= squaredDistance(features, c.LostCentroid)
}

// MarginRegressor is a least-squares fit of the scaled OH&P percentage
// against log(amount), trained on the balanced sample.
type MarginRegressor struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// PredictScaledPercent evaluates the regressor at the given amount
func (r *MarginRegressor) PredictScaledPercent(amount float64) float64 {
	return r.Intercept + r.Slope*math.Log(amount)
}

// TrainModels fits the classifier and regressor on a balanced sample.
// An empty sample cannot support either fit.
func TrainModels(sample models.BalancedSample) (*TrainedModels, error) {
	if len(sample.Records) == 0 {
		return nil, fmt.Errorf("%w: balanced sample is empty", models.ErrInsufficientData)
	}

	classifier, err := trainClassifier(sample.Records)
	if err != nil {
		return nil, err
	}
	regressor, err := trainRegressor(sample.Records)
	if err != nil {
		return nil, err
	}

	return &TrainedModels{
		ID:         uuid.New(),
		TrainedAt:  time.Now().UTC(),
		Seed:       sample.Seed,
		SampleSize: len(sample.Records),
		Classifier: classifier,
		Regressor:  regressor,
	}, nil
}

func trainClassifier(records []*models.BidRecord) (*WinClassifier, error) {
	var wonSum, lostSum [2]float64
	wonCount, lostCount := 0, 0

	for _, record := range records {
		features := recordFeatures(record)
		if record.IsWon() {
			wonSum[0] += features[0]
			wonSum[1] += features[1]
			wonCount++
		} else {
			lostSum[0] += features[0]
			lostSum[1] += features[1]
			lostCount++
		}
	}
	if wonCount == 0 || lostCount == 0 {
		return nil, fmt.Errorf("%w: classifier requires both outcome classes", models.ErrInsufficientData)
	}

	return &WinClassifier{
		WonCentroid:  [2]float64{wonSum[0] / float64(wonCount), wonSum[1] / float64(wonCount)},
		LostCentroid: [2]float64{lostSum[0] / float64(lostCount), lostSum[1] / float64(lostCount)},
	}, nil
}

func trainRegressor(records []*models.BidRecord) (*MarginRegressor, error) {
	var xs, ys []float64
	for _, record := range records {
		if record.Amount <= 0 {
			continue
		}
		xs = append(xs, math.Log(record.Amount))
		ys = append(ys, record.PercentOfScaled)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: regressor requires at least 2 usable records", models.ErrInsufficientData)
	}

	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		// Degenerate amounts in the sample; fall back to a flat line at the mean.
		return &MarginRegressor{Intercept: meanY}, nil
	}

	slope := sxy / sxx
	return &MarginRegressor{
		Intercept: meanY - slope*meanX,
		Slope:     slope,
	}, nil
}

func recordFeatures(record *models.BidRecord) [2]float64 {
	logAmount := 0.0
	if record.Amount > 0 {
		logAmount = math.Log(record.Amount)
	}
	return [2]float64{logAmount, record.PercentOfScaled}
}

func squaredDistance(a, b [2]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return dx*dx + dy*dy
}
