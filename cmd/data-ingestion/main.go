// Package main provides the entry point for the dataset ingestion service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/bidcast/internal/config"
	"github.com/yourusername/bidcast/internal/database"
	"github.com/yourusername/bidcast/internal/datasource"
	"github.com/yourusername/bidcast/internal/forecast"
	"github.com/yourusername/bidcast/internal/health"
	applogger "github.com/yourusername/bidcast/internal/logger"
	"github.com/yourusername/bidcast/internal/metrics"
	"github.com/yourusername/bidcast/internal/repository"
	"github.com/yourusername/bidcast/internal/scheduler"
	"github.com/yourusername/bidcast/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := applogger.NewLogger(cfg.App.LogLevel)

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatal("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.WithError(err).Fatal("Failed to load secrets")
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize repositories")
	}

	ingestion, err := buildIngestion(cfg, repos, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to build ingestion service")
	}

	engine := buildForecastEngine(cfg, repos, log)

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Logger:      log,
		DB:          db,
		Dataset:     engine,
	})
	if err := healthServer.Start(ctx); err != nil {
		log.WithError(err).Fatal("Failed to start health server")
	}

	if cfg.Metrics.Enabled {
		startMetricsServer(ctx, cfg, log)
	}

	// Initial ingestion and dataset load before declaring readiness
	if _, err := ingestion.IngestAll(ctx); err != nil {
		log.WithError(err).Fatal("Initial ingestion failed")
	}
	if err := engine.LoadDataset(ctx); err != nil {
		log.WithError(err).Fatal("Failed to load dataset")
	}
	publishCategoryWinRates(engine, log)
	healthServer.SetReady(true)

	var sched *scheduler.Scheduler
	if cfg.Features.ScheduledRefreshEnabled {
		sched = scheduler.NewScheduler(ingestion, engine, log)
		cronExpr := cfg.Dataset.Schedule.RefreshCron
		if cronExpr == "" {
			cronExpr = "0 2 * * *"
		}
		if err := sched.ScheduleDatasetRefresh(cronExpr); err != nil {
			log.WithError(err).Fatal("Failed to schedule dataset refresh")
		}
		if err := sched.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start scheduler")
		}
		log.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Dataset refresh scheduled")
	}

	log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"records":     engine.DatasetSize(),
	}).Info("Dataset ingestion service running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	healthServer.SetReady(false)
	if sched != nil {
		if err := sched.Stop(); err != nil {
			log.WithError(err).Error("Scheduler shutdown error")
		}
	}
	cancel()
}

func buildIngestion(cfg *config.Config, repos *repository.Repositories, log *logrus.Logger) (*service.IngestionService, error) {
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), log)

	factory := datasource.NewFactory(log)
	sources, err := factory.NewDataSources(cfg.Dataset, httpClient)
	if err != nil {
		return nil, err
	}

	batchSize := 0
	for _, src := range cfg.Dataset.Sources {
		if src.BatchSize > batchSize {
			batchSize = src.BatchSize
		}
	}

	return service.NewIngestionService(
		sources,
		repos.BidRecord,
		service.NewDataValidator(log),
		service.NewDataNormalizer(log),
		log,
		batchSize,
	), nil
}

func buildForecastEngine(cfg *config.Config, repos *repository.Repositories, log *logrus.Logger) *forecast.Engine {
	fcfg, err := forecast.FromConfig(&cfg.Forecast)
	if err != nil {
		log.WithError(err).Fatal("Invalid forecast config")
	}

	engine, err := forecast.NewEngine(fcfg, repos.BidRecord, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create forecast engine")
	}
	return engine
}

func startMetricsServer(ctx context.Context, cfg *config.Config, log *logrus.Logger) {
	metrics.InitRegistry()

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Metrics.Port).Info("Metrics server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
}

func publishCategoryWinRates(engine *forecast.Engine, log *logrus.Logger) {
	profiles, err := engine.BuildWinProfiles()
	if err != nil {
		log.WithError(err).Warn("Failed to compute win profiles for metrics")
		return
	}
	for category, profile := range profiles {
		metrics.UpdateCategoryWinRate(string(category), profile.WinRate)
	}
}
