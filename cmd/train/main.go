package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yourusername/bidcast/internal/config"
	"github.com/yourusername/bidcast/internal/database"
	"github.com/yourusername/bidcast/internal/forecast"
	applogger "github.com/yourusername/bidcast/internal/logger"
	"github.com/yourusername/bidcast/internal/metrics"
	"github.com/yourusername/bidcast/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	seed       int64
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "Random seed for the balanced sample draw")
}

var rootCmd = &cobra.Command{
	Use:   "train",
	Short: "Train classifier and regressor models on a balanced bid sample",
	Long:  `Draws an equal-count Won/Lost sample from the historical bid dataset and trains the win classifier and margin regressor on it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		runTraining()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("BIDCAST")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

func setupDependencies() error {
	logger = applogger.NewLogger(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func runTraining() {
	ctx := context.Background()
	defer db.Close()

	fcfg, err := forecast.FromConfig(&cfg.Forecast)
	if err != nil {
		logger.WithError(err).Fatal("Invalid forecast config")
	}

	engine, err := forecast.NewEngine(fcfg, repos.BidRecord, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create forecast engine")
	}
	if err := engine.LoadDataset(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to load dataset")
	}

	trained, err := engine.TrainBalancedModels(seed)
	if err != nil {
		logger.WithError(err).Fatal("Training failed")
	}

	metrics.RecordTrainingRun()
	applogger.NewForecastLogger(logger).LogTrainingRun(trained.Seed, trained.SampleSize, trained.ID.String())

	fmt.Println("\n=== Balanced Model Training Report ===")
	fmt.Printf("Model ID:     %s\n", trained.ID)
	fmt.Printf("Trained at:   %s\n", trained.TrainedAt.Format(time.RFC3339))
	fmt.Printf("Seed:         %d\n", trained.Seed)
	fmt.Printf("Sample size:  %d (%d won / %d lost)\n", trained.SampleSize, trained.SampleSize/2, trained.SampleSize/2)
	fmt.Printf("Classifier:   won centroid (%.4f, %.4f), lost centroid (%.4f, %.4f)\n",
		trained.Classifier.WonCentroid[0], trained.Classifier.WonCentroid[1],
		trained.Classifier.LostCentroid[0], trained.Classifier.LostCentroid[1])
	fmt.Printf("Regressor:    scaled_percent = %.4f + %.4f * ln(amount)\n",
		trained.Regressor.Intercept, trained.Regressor.Slope)
}
