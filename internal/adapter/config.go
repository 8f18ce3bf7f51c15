package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mmcdole/shutter/internal/domain"
	"github.com/spf13/viper"
)

// Unsplash caps per_page at 30
const maxPerPage = 30

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds remote catalog configuration
type CatalogConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AccessKey string        `mapstructure:"access_key"` // ACCESS_KEY
	PerPage   int           `mapstructure:"per_page"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	DefaultLayout string `mapstructure:"default_layout"` // "uniform" or "packed"
	CellWidthPx   int    `mapstructure:"cell_width_px"`  // pixels per terminal column
	CellHeightPx  int    `mapstructure:"cell_height_px"` // pixels per terminal row
	OpenCommand   string `mapstructure:"open_command"`   // empty = auto-detect browser
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "https://api.unsplash.com",
			PerPage: 20,
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			DefaultLayout: "uniform",
			CellWidthPx:   8,
			CellHeightPx:  16,
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shutter", "shutter.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "shutter", "shutter.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shutter")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shutter")
	}
}

// LoadConfig loads configuration from .env, the config file and the environment.
// configFile may be empty to search the default locations.
func LoadConfig(configFile string) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (SHUTTER_CATALOG_PER_PAGE, ...)
	v.SetEnvPrefix("SHUTTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("catalog.base_url", def.Catalog.BaseURL)
	v.SetDefault("catalog.per_page", def.Catalog.PerPage)
	v.SetDefault("catalog.timeout", def.Catalog.Timeout)
	v.SetDefault("ui.default_layout", def.UI.DefaultLayout)
	v.SetDefault("ui.cell_width_px", def.UI.CellWidthPx)
	v.SetDefault("ui.cell_height_px", def.UI.CellHeightPx)
	v.SetDefault("ui.open_command", def.UI.OpenCommand)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.max_size_mb", def.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", def.Logging.MaxBackups)

	// The access key is read under its plain name first
	if err := v.BindEnv("catalog.access_key",
		"ACCESS_KEY", "SHUTTER_ACCESS_KEY", "UNSPLASH_ACCESS_KEY", "VITE_UNSPLASH_ACCESS_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Catalog.AccessKey = strings.TrimSpace(cfg.Catalog.AccessKey)

	return cfg, nil
}

// Validate checks the settings that cannot have a sensible default
func (c *Config) Validate() error {
	if c.Catalog.AccessKey == "" {
		return fmt.Errorf("%w: ACCESS_KEY is not set", domain.ErrConfigurationMissing)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog.base_url is empty", domain.ErrConfigurationMissing)
	}
	if c.Catalog.PerPage < 1 || c.Catalog.PerPage > maxPerPage {
		return fmt.Errorf("catalog.per_page must be between 1 and %d, got %d", maxPerPage, c.Catalog.PerPage)
	}
	if c.UI.CellWidthPx < 1 || c.UI.CellHeightPx < 1 {
		return fmt.Errorf("ui cell size must be positive, got %dx%d", c.UI.CellWidthPx, c.UI.CellHeightPx)
	}
	if _, err := domain.ParseLayoutMode(c.UI.DefaultLayout); err != nil {
		return fmt.Errorf("ui.default_layout: %w", err)
	}
	return nil
}

// LayoutMode returns the configured initial layout mode
func (c *Config) LayoutMode() domain.LayoutMode {
	mode, _ := domain.ParseLayoutMode(c.UI.DefaultLayout)
	return mode
}
