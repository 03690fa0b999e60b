package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/bidcast/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// CSVFileSourceType reads a local bid-history export
	CSVFileSourceType SourceType = "csv_file"
	// CSVHTTPSourceType fetches a bid-history export over HTTP
	CSVHTTPSourceType SourceType = "csv_http"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
}

// NewFactory creates a new data source factory
func NewFactory(logger *logrus.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	switch SourceType(cfg.Type) {
	case CSVFileSourceType:
		if cfg.Path == "" {
			return nil, fmt.Errorf("csv_file source %s requires a path", cfg.Name)
		}
		return NewCSVFileSource(cfg.Name, cfg.Path, cfg.Enabled, f.logger), nil

	case CSVHTTPSourceType:
		if cfg.URL == "" {
			return nil, fmt.Errorf("csv_http source %s requires a url", cfg.Name)
		}
		if httpClient == nil {
			return nil, fmt.Errorf("csv_http source %s requires an HTTP client", cfg.Name)
		}
		return NewCSVHTTPSource(httpClient, cfg.Name, cfg.URL, cfg.APIKey, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", cfg.Type)
	}
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources(datasetCfg config.DatasetConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range datasetCfg.Sources {
		if !srcCfg.Enabled {
			if f.logger != nil {
				f.logger.WithField("source", srcCfg.Name).Info("Skipping disabled data source")
			}
			continue
		}

		source, err := f.NewDataSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		if f.logger != nil {
			f.logger.WithFields(logrus.Fields{
				"source": srcCfg.Name,
				"type":   srcCfg.Type,
			}).Info("Created data source")
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}
