package models

// OHPEstimate is the recommended overhead-and-profit margin for a target
// project amount. PredictedPercent is in raw percentage units; the dollar
// value is derived as (percent / 100) * target amount.
type OHPEstimate struct {
	TargetAmount         float64 `json:"target_amount"`
	PredictedPercent     float64 `json:"predicted_percent"`
	PredictedDollarValue float64 `json:"predicted_dollar_value"`
}

// OHPScatterPoint is one historical (amount, raw percent, status) observation
// supplied to the caller for chart rendering.
type OHPScatterPoint struct {
	Amount    float64   `json:"amount"`
	PercentOf float64   `json:"percent_of"`
	Status    BidStatus `json:"status"`
}

// OHPCurvePoint is one evaluated point of the fitted log-linear curve
type OHPCurvePoint struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// OHPChart bundles the estimate with the data the consumer needs to render
// the scatter plot and fitted-curve overlay.
type OHPChart struct {
	Estimate  OHPEstimate       `json:"estimate"`
	Points    []OHPScatterPoint `json:"points"`
	Curve     []OHPCurvePoint   `json:"curve"`
	Intercept float64           `json:"intercept"`
	Slope     float64           `json:"slope"`
}
