package models

// WinProfile holds per-category aggregate statistics derived from the
// historical dataset. Profiles are recomputed from the full filtered dataset
// on each forecast invocation, never maintained incrementally.
type WinProfile struct {
	Category    ProjectCategory `json:"category"`
	AvgAmount   float64         `json:"avg_amount"`
	WinRate     float64         `json:"win_rate"`
	RecordCount int             `json:"record_count"`
}

// BalancedSample is an equal-class-count subsample of historical records.
// It is consumed only by balanced-model training, never by the forecast
// simulator or the OH&P estimator.
type BalancedSample struct {
	Records   []*BidRecord `json:"records"`
	WonCount  int          `json:"won_count"`
	LostCount int          `json:"lost_count"`
	Seed      int64        `json:"seed"`
}
