package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/shutter/internal/adapter"
	"github.com/mmcdole/shutter/internal/adapter/source/unsplash"
	"github.com/mmcdole/shutter/internal/domain"
)

// SourceConfig contains the configuration needed to create a catalog client
type SourceConfig struct {
	BaseURL   string
	AccessKey string
	Timeout   time.Duration
}

// NewClient creates a catalog repository for the configured service
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.CatalogRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: catalog base URL", domain.ErrConfigurationMissing)
	}

	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("%w: ACCESS_KEY", domain.ErrConfigurationMissing)
	}

	return unsplash.NewClient(cfg.BaseURL, cfg.AccessKey, cfg.Timeout, logger), nil
}

// NewClientFromConfig creates a catalog repository from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.CatalogRepository, error) {
	return NewClient(&SourceConfig{
		BaseURL:   cfg.Catalog.BaseURL,
		AccessKey: cfg.Catalog.AccessKey,
		Timeout:   cfg.Catalog.Timeout,
	}, logger)
}
