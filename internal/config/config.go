package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"destpick/internal/domain"
)

// FileName is the name of the config file inside the user config directory
const FileName = "config.toml"

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	Catalog    CatalogSettings `toml:"catalog"`
	UISettings UISettings      `toml:"ui"`
	Logging    LoggingSettings `toml:"logging"`
	Server     ServerSettings  `toml:"server"`
}

// CatalogSettings describes where the destination catalog is read from
type CatalogSettings struct {
	BaseURL string `toml:"base_url" env:"DESTPICK_BASE_URL"`
	Path    string `toml:"path" env:"DESTPICK_CATALOG_PATH"`
	Timeout string `toml:"timeout" env:"DESTPICK_CATALOG_TIMEOUT"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Placeholder string `toml:"placeholder" env:"DESTPICK_PLACEHOLDER"`
	RoutePrefix string `toml:"route_prefix" env:"DESTPICK_ROUTE_PREFIX"`
	Mouse       bool   `toml:"mouse" env:"DESTPICK_MOUSE"`
}

// LoggingSettings controls the log file
type LoggingSettings struct {
	Level  string `toml:"level" env:"DESTPICK_LOG_LEVEL"`
	Format string `toml:"format" env:"DESTPICK_LOG_FORMAT"`
	File   string `toml:"file" env:"DESTPICK_LOG_FILE"`
}

// ServerSettings configures the bundled catalog server
type ServerSettings struct {
	Addr     string `toml:"addr" env:"DESTPICK_SERVER_ADDR"`
	SeedFile string `toml:"seed_file" env:"DESTPICK_SEED_FILE"`
}

// CatalogURL joins base URL and catalog path
func (c CatalogSettings) CatalogURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.Path, "/")
}

// TimeoutDuration returns the parsed timeout, or the default one if the
// value is empty or malformed. Validate reports malformed values.
func (c CatalogSettings) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

const defaultTimeout = 5 * time.Second

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigServiceWithPath creates a config service backed by path. An
// empty path means DefaultPath.
func NewConfigServiceWithPath(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns ~/.config/destpick/config.toml (or the platform equivalent)
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "destpick", FileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file if present, then applies .env and environment
// overrides. A missing file yields the defaults.
func (cs *configService) Load() (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(cs.filePath); err == nil {
		if err := decodeFile(cs.filePath, cfg); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. The file must exist.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := DefaultConfig()
	if err := decodeFile(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}

// ApplyEnv loads an optional .env file from the working directory and
// overrides fields from DESTPICK_* variables.
func ApplyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	return nil
}

// Validate checks configuration values for correctness
func (c *Config) Validate() error {
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("catalog.base_url must be an http(s) URL, got %q", c.Catalog.BaseURL)
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog.path must not be empty")
	}

	if d, err := time.ParseDuration(c.Catalog.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("catalog.timeout must be a positive duration, got %q", c.Catalog.Timeout)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error; got %q", c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console; got %q", c.Logging.Format)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Catalog: CatalogSettings{
			BaseURL: "http://localhost:3000",
			Path:    "/api/destinations",
			Timeout: defaultTimeout.String(),
		},
		UISettings: UISettings{
			Placeholder: "Where do you want to go?",
			RoutePrefix: domain.DefaultRoutePrefix,
			Mouse:       true,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
			File:   "destpick.log",
		},
		Server: ServerSettings{
			Addr:     ":3000",
			SeedFile: "destinations.yaml",
		},
	}
}

// Encode writes cfg as TOML
func Encode(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
