package forecast

import (
	"fmt"
	"time"

	"github.com/yourusername/bidcast/internal/config"
)

// Default simulation parameters. The amount draw uses a standard deviation
// proportional to the category's average amount; the win-probability draw
// uses a fixed absolute standard deviation.
const (
	DefaultAmountStdDevFactor = 0.15
	DefaultWinRateStdDev      = 0.05
	DefaultCurvePoints        = 50
	DefaultMaxPeriodCount     = 520
)

// ForecastConfig extends core config with engine-specific settings
type ForecastConfig struct {
	AmountStdDevFactor float64
	WinRateStdDev      float64
	MaxPeriodCount     int
	CurvePoints        int
	CacheTTL           time.Duration
}

// FromConfig converts app config to forecast config
func FromConfig(cfg *config.ForecastConfig) (ForecastConfig, error) {
	if cfg == nil {
		return ForecastConfig{}, fmt.Errorf("forecast config is required")
	}
	fc := ForecastConfig{
		AmountStdDevFactor: cfg.AmountStdDevFactor,
		WinRateStdDev:      cfg.WinRateStdDev,
		MaxPeriodCount:     cfg.MaxPeriodCount,
		CurvePoints:        cfg.CurvePoints,
		CacheTTL:           time.Duration(cfg.CacheTTLSeconds) * time.Second,
	}
	fc.applyDefaults()
	if fc.AmountStdDevFactor < 0 {
		return ForecastConfig{}, fmt.Errorf("amount_std_dev_factor must be non-negative")
	}
	if fc.WinRateStdDev < 0 {
		return ForecastConfig{}, fmt.Errorf("win_rate_std_dev must be non-negative")
	}
	return fc, nil
}

// DefaultForecastConfig returns the engine defaults used when no app config
// is present (tests, CSV-only runs).
func DefaultForecastConfig() ForecastConfig {
	fc := ForecastConfig{}
	fc.applyDefaults()
	return fc
}

func (fc *ForecastConfig) applyDefaults() {
	if fc.AmountStdDevFactor == 0 {
		fc.AmountStdDevFactor = DefaultAmountStdDevFactor
	}
	if fc.WinRateStdDev == 0 {
		fc.WinRateStdDev = DefaultWinRateStdDev
	}
	if fc.MaxPeriodCount <= 0 {
		fc.MaxPeriodCount = DefaultMaxPeriodCount
	}
	if fc.CurvePoints <= 0 {
		fc.CurvePoints = DefaultCurvePoints
	}
	if fc.CacheTTL <= 0 {
		fc.CacheTTL = 5 * time.Minute
	}
}
