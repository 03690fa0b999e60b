// Package main provides the entry point for the OH&P estimator CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

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
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		csvPath    = flag.String("csv", "", "Run against a local CSV export instead of the database")
		amount     = flag.Float64("amount", 0, "Target contract amount in dollars (required)")
		output     = flag.String("output", "", "Write the full chart payload as JSON to this path")
	)
	flag.Parse()

	log := newLogger()
	ctx := context.Background()

	if *amount <= 0 {
		log.Fatalf("A positive -amount is required, got %g", *amount)
	}

	engine := buildEngine(ctx, *configPath, *csvPath, log)

	chart, err := engine.GetOHPEstimate(*amount)
	if err != nil {
		log.Fatalf("OH&P estimate failed: %v", err)
	}

	forecastLog := logger.NewForecastLogger(log)
	forecastLog.LogOHPEstimate(chart.Estimate.TargetAmount, chart.Estimate.PredictedPercent, chart.Estimate.PredictedDollarValue, len(chart.Points))

	fmt.Printf("Target amount:     $%.2f\n", chart.Estimate.TargetAmount)
	fmt.Printf("Predicted OH&P:    %.3f%%\n", chart.Estimate.PredictedPercent)
	fmt.Printf("Predicted dollars: $%.2f\n", chart.Estimate.PredictedDollarValue)
	fmt.Printf("Fit: percent = %.4f + %.4f * ln(amount), %d observations\n", chart.Intercept, chart.Slope, len(chart.Points))

	if *output != "" {
		if err := writeChart(chart, *output); err != nil {
			log.Fatalf("Failed to write chart: %v", err)
		}
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stderr)
	return log
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

func writeChart(chart models.OHPChart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(chart)
}
