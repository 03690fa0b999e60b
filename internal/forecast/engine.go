package forecast

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/bidcast/internal/metrics"
	"github.com/yourusername/bidcast/internal/models"
	"github.com/yourusername/bidcast/internal/repository"
)

// Engine exposes the estimating and forecast operations over a read-only
// in-memory snapshot of the historical dataset. Results for a given
// (operation, parameters) pair are memoized and invalidated whenever the
// dataset reloads, so interactive callers can recompute cheaply on parameter
// changes. Every stochastic operation derives its own seeded generator, so
// concurrent calls never share random state.
type Engine struct {
	cfg    ForecastConfig
	repo   repository.BidRecordRepository
	logger *logrus.Logger
	cache  *cache.Cache

	mu         sync.RWMutex
	records    []*models.BidRecord
	generation uint64
}

// NewEngine creates an engine backed by a bid record repository. Call
// LoadDataset before invoking any operation.
func NewEngine(cfg ForecastConfig, repo repository.BidRecordRepository, logger *logrus.Logger) (*Engine, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		cache:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}, nil
}

// NewEngineFromRecords creates an engine over an already loaded dataset,
// used for CSV-only runs and tests.
func NewEngineFromRecords(cfg ForecastConfig, records []*models.BidRecord, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	engine := &Engine{
		cfg:    cfg,
		logger: logger,
		cache:  cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
	engine.setRecords(records)
	return engine
}

// LoadDataset replaces the in-memory dataset from the repository and
// invalidates all memoized results.
func (e *Engine) LoadDataset(ctx context.Context) error {
	if e.repo == nil {
		return fmt.Errorf("engine has no repository: %w", models.ErrDatasetNotLoaded)
	}
	records, err := e.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load historical dataset: %w", err)
	}
	e.setRecords(records)
	e.logger.WithField("records", len(records)).Info("Historical dataset loaded")
	return nil
}

func (e *Engine) setRecords(records []*models.BidRecord) {
	// Keep the status invariant even if an upstream filter was skipped.
	filtered := make([]*models.BidRecord, 0, len(records))
	for _, record := range records {
		if record.Status.IsValid() {
			filtered = append(filtered, record)
		}
	}

	e.mu.Lock()
	e.records = filtered
	e.generation++
	e.mu.Unlock()

	e.cache.Flush()
	metrics.UpdateDatasetSize(float64(len(filtered)))
}

// InvalidateDataset drops all memoized results without reloading records
func (e *Engine) InvalidateDataset() {
	e.mu.Lock()
	e.generation++
	e.mu.Unlock()
	e.cache.Flush()
}

// DatasetSize returns the number of loaded records
func (e *Engine) DatasetSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.records)
}

func (e *Engine) snapshot() ([]*models.BidRecord, uint64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.records == nil {
		return nil, 0, models.ErrDatasetNotLoaded
	}
	return e.records, e.generation, nil
}

// BuildWinProfiles recomputes the per-category profiles from the full
// loaded dataset. Exposed for diagnostics and used by GetForecast.
func (e *Engine) BuildWinProfiles() (map[models.ProjectCategory]models.WinProfile, error) {
	records, _, err := e.snapshot()
	if err != nil {
		return nil, err
	}
	return BuildProfiles(records), nil
}

// GetForecast runs the stochastic per-period simulation for the request.
// Identical requests against an unchanged dataset return the memoized rows.
func (e *Engine) GetForecast(req models.ForecastRequest) ([]models.SimulatedOutcome, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.PeriodCount > e.cfg.MaxPeriodCount {
		return nil, fmt.Errorf("%w: period count %d exceeds maximum %d", models.ErrInvalidParameter, req.PeriodCount, e.cfg.MaxPeriodCount)
	}

	records, generation, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	key := forecastCacheKey(generation, req)
	if cached, found := e.cache.Get(key); found {
		metrics.RecordCacheHit()
		return cached.([]models.SimulatedOutcome), nil
	}
	metrics.RecordCacheMiss()

	started := time.Now()
	profiles := BuildProfiles(records)
	rng := rand.New(rand.NewSource(req.Seed))
	outcomes, err := Simulate(req, profiles, e.cfg, rng)
	if err != nil {
		return nil, err
	}

	e.cache.Set(key, outcomes, cache.DefaultExpiration)
	metrics.RecordForecastRun(time.Since(started).Seconds())
	metrics.RecordSimulatedOutcomes(float64(len(outcomes)))

	e.logger.WithFields(logrus.Fields{
		"periods":    req.PeriodCount,
		"frequency":  req.Frequency,
		"categories": len(profiles),
		"rows":       len(outcomes),
	}).Debug("Forecast simulation complete")

	return outcomes, nil
}

// GetOHPEstimate fits (or reuses) the log-linear model and evaluates it at
// the target amount, returning the estimate together with the scatter and
// fitted-curve data the caller renders as a chart overlay.
func (e *Engine) GetOHPEstimate(targetAmount float64) (models.OHPChart, error) {
	if targetAmount <= 0 {
		return models.OHPChart{}, fmt.Errorf("%w: target amount must be positive, got %g", models.ErrInvalidParameter, targetAmount)
	}

	records, generation, err := e.snapshot()
	if err != nil {
		return models.OHPChart{}, err
	}

	key := fmt.Sprintf("ohp:%d:%g", generation, targetAmount)
	if cached, found := e.cache.Get(key); found {
		metrics.RecordCacheHit()
		return cached.(models.OHPChart), nil
	}
	metrics.RecordCacheMiss()

	model, err := e.fittedModel(records, generation)
	if err != nil {
		return models.OHPChart{}, err
	}

	estimate, err := model.Predict(targetAmount)
	if err != nil {
		return models.OHPChart{}, err
	}

	chart := models.OHPChart{
		Estimate:  estimate,
		Points:    ScatterPoints(records),
		Curve:     model.Curve(e.cfg.CurvePoints),
		Intercept: model.Intercept,
		Slope:     model.Slope,
	}
	e.cache.Set(key, chart, cache.DefaultExpiration)

	e.logger.WithFields(logrus.Fields{
		"target_amount":     targetAmount,
		"predicted_percent": estimate.PredictedPercent,
		"sample_size":       model.SampleSize,
	}).Debug("OH&P estimate computed")

	return chart, nil
}

// fittedModel caches the regression fit per dataset generation; the fit is
// re-used across queries until the dataset changes.
func (e *Engine) fittedModel(records []*models.BidRecord, generation uint64) (*OHPModel, error) {
	key := fmt.Sprintf("ohp_model:%d", generation)
	if cached, found := e.cache.Get(key); found {
		return cached.(*OHPModel), nil
	}

	started := time.Now()
	model, err := FitOHP(records)
	if err != nil {
		return nil, err
	}
	metrics.RecordRegressionFit(time.Since(started).Seconds())

	e.cache.Set(key, model, cache.DefaultExpiration)
	return model, nil
}

// TrainBalancedModels builds the balanced sample under the given seed and
// trains the reserved classifier/regressor pair on it. The returned handle
// is not wired to any forecast or estimate path.
func (e *Engine) TrainBalancedModels(seed int64) (*TrainedModels, error) {
	records, _, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	sample := Balance(records, rng)
	sample.Seed = seed

	trained, err := TrainModels(sample)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"seed":        seed,
		"sample_size": trained.SampleSize,
		"model_id":    trained.ID,
	}).Info("Balanced models trained")

	return trained, nil
}

func forecastCacheKey(generation uint64, req models.ForecastRequest) string {
	return fmt.Sprintf("forecast:%d:%s:%d:%s:%s:%g:%d",
		generation,
		req.StartDate.UTC().Format(time.RFC3339),
		req.PeriodCount,
		req.Frequency,
		req.ClientType,
		req.WinThreshold,
		req.Seed,
	)
}
