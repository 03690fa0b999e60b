// Package main provides the entry point for the forecast CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/bidcast/internal/config"
	"github.com/yourusername/bidcast/internal/database"
	"github.com/yourusername/bidcast/internal/datasource"
	"github.com/yourusername/bidcast/internal/forecast"
	"github.com/yourusername/bidcast/internal/logger"
	"github.com/yourusername/bidcast/internal/models"
	"github.com/yourusername/bidcast/internal/repository"
	"github.com/yourusername/bidcast/internal/service"
)

func main() {
	var (
		configPath   = flag.String("config", "config/config.yaml", "Path to config file")
		csvPath      = flag.String("csv", "", "Run against a local CSV export instead of the database")
		startDate    = flag.String("start", "", "Forecast start date (YYYY-MM-DD), defaults to today")
		periods      = flag.Int("periods", 12, "Number of forecast periods")
		frequency    = flag.String("frequency", "MONTHS", "Period spacing: DAYS, WEEKS or MONTHS")
		clientType   = flag.String("client-type", "EXISTING", "Client type tag: EXISTING or NEW")
		winThreshold = flag.Float64("threshold", 0.5, "Win probability threshold in [0,1]")
		seed         = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible runs")
		output       = flag.String("output", "", "Write forecast rows as JSON to this path (default stdout)")
	)
	flag.Parse()

	log := newLogger()
	ctx := context.Background()

	engine := buildEngine(ctx, *configPath, *csvPath, log)

	req := buildRequest(*startDate, *periods, *frequency, *clientType, *winThreshold, *seed, log)

	started := time.Now()
	outcomes, err := engine.GetForecast(req)
	if err != nil {
		log.Fatalf("Forecast failed: %v", err)
	}

	forecastLog := logger.NewForecastLogger(log)
	forecastLog.LogForecastRun(req.StartDate, req.PeriodCount, string(req.Frequency), string(req.ClientType), req.WinThreshold, len(outcomes), time.Since(started))

	if err := writeJSON(outcomes, *output); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	return log
}

func buildRequest(start string, periods int, frequency, clientType string, threshold float64, seed int64, log *logrus.Logger) models.ForecastRequest {
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
		startDate = parsed
	}

	return models.ForecastRequest{
		StartDate:    startDate,
		PeriodCount:  periods,
		Frequency:    models.Frequency(frequency),
		ClientType:   models.ClientType(clientType),
		WinThreshold: threshold,
		Seed:         seed,
	}
}

func buildEngine(ctx context.Context, configPath, csvPath string, log *logrus.Logger) *forecast.Engine {
	if csvPath != "" {
		records := loadRecordsFromCSV(ctx, csvPath, log)
		return forecast.NewEngineFromRecords(forecast.DefaultForecastConfig(), records, log)
	}

	cfg := loadConfigWithSecrets(configPath, log)

	fcfg, err := forecast.FromConfig(&cfg.Forecast)
	if err != nil {
		log.Fatalf("Invalid forecast config: %v", err)
	}

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	engine, err := forecast.NewEngine(fcfg, repos.BidRecord, log)
	if err != nil {
		log.Fatalf("Failed to create forecast engine: %v", err)
	}
	if err := engine.LoadDataset(ctx); err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	return engine
}

// loadRecordsFromCSV runs the ingestion pipeline in memory for DB-less runs
func loadRecordsFromCSV(ctx context.Context, path string, log *logrus.Logger) []*models.BidRecord {
	source := datasource.NewCSVFileSource("local_csv", path, true, log)
	repo := repository.NewMemoryBidRecordRepository()
	ingestion := service.NewIngestionService(
		[]datasource.DataSource{source},
		repo,
		service.NewDataValidator(log),
		service.NewDataNormalizer(log),
		log,
		0,
	)

	if _, err := ingestion.IngestAll(ctx); err != nil {
		log.Fatalf("Failed to ingest CSV: %v", err)
	}

	records, err := repo.GetAll(ctx)
	if err != nil {
		log.Fatalf("Failed to read ingested records: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("CSV %s produced no usable records", path)
	}
	return records
}

func loadConfigWithSecrets(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func writeJSON(outcomes []models.SimulatedOutcome, path string) error {
	var out *os.File
	if path == "" {
		out = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcomes)
}
