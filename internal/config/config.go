// Package config provides configuration management for the Bidcast application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Dataset  DatasetConfig  `mapstructure:"dataset" validate:"required"`
	Forecast ForecastConfig `mapstructure:"forecast" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Features FeaturesConfig `mapstructure:"features"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// DatasetConfig represents historical dataset source configuration
type DatasetConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig     `mapstructure:"schedule"`
}

// DataSourceConfig represents a single dataset source
type DataSourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Type      string `mapstructure:"type" validate:"required,oneof=csv_file csv_http"`
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	URL       string `mapstructure:"url" validate:"omitempty,url"`
	APIKey    string `mapstructure:"api_key"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
}

// ScheduleConfig represents scheduled dataset refresh configuration
type ScheduleConfig struct {
	RefreshCron string `mapstructure:"refresh_cron"`
}

// ForecastConfig represents forecast engine configuration
type ForecastConfig struct {
	AmountStdDevFactor  float64 `mapstructure:"amount_std_dev_factor" validate:"gte=0,lte=1"`
	WinRateStdDev       float64 `mapstructure:"win_rate_std_dev" validate:"gte=0,lte=1"`
	DefaultWinThreshold float64 `mapstructure:"default_win_threshold" validate:"gte=0,lte=1"`
	MaxPeriodCount      int     `mapstructure:"max_period_count" validate:"omitempty,gt=0"`
	CurvePoints         int     `mapstructure:"curve_points" validate:"omitempty,gt=1"`
	CacheTTLSeconds     int     `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	ScheduledRefreshEnabled bool `mapstructure:"scheduled_refresh_enabled"`
	BalancedTrainingEnabled bool `mapstructure:"balanced_training_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
