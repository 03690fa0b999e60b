package forecast

import (
	"fmt"
	"math"

	"github.com/yourusername/bidcast/internal/models"
)

// OHPModel is a log-linear model of the raw OH&P percentage against the
// natural log of the contract amount, fit by ordinary least squares over the
// full valid-status dataset. It always operates on the unscaled percentage.
type OHPModel struct {
	Intercept  float64
	Slope      float64
	SampleSize int
	MinAmount  float64
	MaxAmount  float64
}

// FitOHP fits the OH&P regression. Records with non-positive amounts are
// excluded from the fit. Fewer than 2 distinct amount values make the fit
// ill-conditioned and return an insufficient-data error instead of a
// degenerate line.
func FitOHP(records []*models.BidRecord) (*OHPModel, error) {
	var xs, ys []float64
	minAmount := math.Inf(1)
	maxAmount := math.Inf(-1)
	distinct := make(map[float64]struct{})

	for _, record := range records {
		if !record.Status.IsValid() || record.Amount <= 0 {
			continue
		}
		xs = append(xs, math.Log(record.Amount))
		ys = append(ys, record.PercentOf)
		distinct[record.Amount] = struct{}{}
		if record.Amount < minAmount {
			minAmount = record.Amount
		}
		if record.Amount > maxAmount {
			maxAmount = record.Amount
		}
	}

	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w: regression requires at least 2 distinct amounts, got %d", models.ErrInsufficientData, len(distinct))
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
		return nil, fmt.Errorf("%w: zero variance in log(amount)", models.ErrInsufficientData)
	}

	slope := sxy / sxx
	return &OHPModel{
		Intercept:  meanY - slope*meanX,
		Slope:      slope,
		SampleSize: len(xs),
		MinAmount:  minAmount,
		MaxAmount:  maxAmount,
	}, nil
}

// PercentAt evaluates the fitted line at log(amount) without rounding
func (m *OHPModel) PercentAt(amount float64) float64 {
	return m.Intercept + m.Slope*math.Log(amount)
}

// Predict evaluates the model at the target amount. Non-positive targets are
// rejected before evaluation since log of a non-positive value is undefined.
func (m *OHPModel) Predict(targetAmount float64) (models.OHPEstimate, error) {
	if targetAmount <= 0 {
		return models.OHPEstimate{}, fmt.Errorf("%w: target amount must be positive, got %g", models.ErrInvalidParameter, targetAmount)
	}
	percent := m.PercentAt(targetAmount)
	return models.OHPEstimate{
		TargetAmount:         targetAmount,
		PredictedPercent:     round3(percent),
		PredictedDollarValue: round2(percent / 100 * targetAmount),
	}, nil
}

// Curve evaluates the fitted line over the historical amount range for chart
// overlay rendering. Points are spaced evenly in log(amount).
func (m *OHPModel) Curve(points int) []models.OHPCurvePoint {
	if points < 2 {
		points = 2
	}
	logMin := math.Log(m.MinAmount)
	logMax := math.Log(m.MaxAmount)
	step := (logMax - logMin) / float64(points-1)

	curve := make([]models.OHPCurvePoint, 0, points)
	for i := 0; i < points; i++ {
		amount := math.Exp(logMin + step*float64(i))
		curve = append(curve, models.OHPCurvePoint{
			Amount:  round2(amount),
			Percent: round3(m.PercentAt(amount)),
		})
	}
	return curve
}

// ScatterPoints extracts the historical (amount, raw percent, status)
// observations the consumer renders behind the fitted curve.
func ScatterPoints(records []*models.BidRecord) []models.OHPScatterPoint {
	points := make([]models.OHPScatterPoint, 0, len(records))
	for _, record := range records {
		if !record.Status.IsValid() || record.Amount <= 0 {
			continue
		}
		points = append(points, models.OHPScatterPoint{
			Amount:    record.Amount,
			PercentOf: record.PercentOf,
			Status:    record.Status,
		})
	}
	return points
}
