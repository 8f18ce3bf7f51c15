package main

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/mmcdole/shutter/internal/adapter"
	"github.com/mmcdole/shutter/internal/adapter/source"
	"github.com/mmcdole/shutter/internal/domain"
	"github.com/mmcdole/shutter/internal/service"
)

// app holds everything a command needs once configuration has been read
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	catalog domain.CatalogRepository
	gallery *service.GalleryService
}

// setup loads and validates configuration, then wires the logger, catalog
// client and services. A missing access key stops here, before any UI.
func setup(configFile, logLevel string) (*app, error) {
	cfg, err := adapter.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting shutter", "version", Version, "catalog", cfg.Catalog.BaseURL)

	catalog, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		gallery: service.NewGalleryService(catalog, cfg.Catalog.PerPage, logger),
	}, nil
}

// terminalSize returns the size of stdout in cells, or 80x24 when stdout is
// not a terminal
func terminalSize() (width, height int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80, 24
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
