// Package config provides configuration loading and validation for the server
// and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/portfolio-builder/internal/registry"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultPort                = 8080
	DefaultLogLevel            = "info"
	DefaultPreset              = "minimal"
	DefaultMarketplaceCacheTTL = "5m"
	DefaultEnrichTimeout       = "20s"
)

// Config represents the application configuration. It can be loaded from a
// JSON or YAML file and overridden from the environment.
// All fields are optional; missing values use defaults.
type Config struct {
	Port        int    `json:"port,omitempty" yaml:"port"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url"`
	APIKey      string `json:"api_key,omitempty" yaml:"api_key"` // Gemini API key
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level"`

	DefaultPreset       string `json:"default_preset,omitempty" yaml:"default_preset"`
	MarketplaceCacheTTL string `json:"marketplace_cache_ttl,omitempty" yaml:"marketplace_cache_ttl"`

	// Project preview enrichment
	EnrichTimeout string `json:"enrich_timeout,omitempty" yaml:"enrich_timeout"`
	UseBrowser    bool   `json:"use_browser,omitempty" yaml:"use_browser"` // Render SPA project pages in headless Chrome
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                DefaultPort,
		LogLevel:            DefaultLogLevel,
		DefaultPreset:       DefaultPreset,
		MarketplaceCacheTTL: DefaultMarketplaceCacheTTL,
		EnrichTimeout:       DefaultEnrichTimeout,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads configuration values from environment variables.
func FromEnv() Config {
	return Config{
		Port:                GetEnvInt("PORT", 0),
		DatabaseURL:         GetEnvString("DATABASE_URL", ""),
		APIKey:              GetEnvString("GEMINI_API_KEY", ""),
		LogLevel:            GetEnvString("LOG_LEVEL", ""),
		DefaultPreset:       GetEnvString("DEFAULT_PRESET", ""),
		MarketplaceCacheTTL: GetEnvString("MARKETPLACE_CACHE_TTL", ""),
		EnrichTimeout:       GetEnvString("ENRICH_TIMEOUT", ""),
		UseBrowser:          GetEnvBool("USE_BROWSER", false),
	}
}

// Load builds the effective configuration: environment values win over the
// config file (when path is set), which wins over Defaults. The result is
// validated.
func Load(path string) (*Config, error) {
	cfg := FromEnv()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level' %q", c.LogLevel)
		}
	}

	if c.DefaultPreset != "" {
		if _, ok := registry.Default().Preset(c.DefaultPreset); !ok {
			return fmt.Errorf("config error: unknown 'default_preset' %q", c.DefaultPreset)
		}
	}

	if _, err := parsePositiveDuration("marketplace_cache_ttl", c.MarketplaceCacheTTL); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("enrich_timeout", c.EnrichTimeout); err != nil {
		return err
	}

	return nil
}

// CacheTTL returns the marketplace cache TTL, or zero when unset.
func (c *Config) CacheTTL() time.Duration {
	d, _ := parsePositiveDuration("marketplace_cache_ttl", c.MarketplaceCacheTTL)
	return d
}

// EnrichDeadline returns the project enrichment timeout, or zero when unset.
func (c *Config) EnrichDeadline() time.Duration {
	d, _ := parsePositiveDuration("enrich_timeout", c.EnrichTimeout)
	return d
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.DefaultPreset == "" {
		result.DefaultPreset = defaults.DefaultPreset
	}
	if result.MarketplaceCacheTTL == "" {
		result.MarketplaceCacheTTL = defaults.MarketplaceCacheTTL
	}
	if result.EnrichTimeout == "" {
		result.EnrichTimeout = defaults.EnrichTimeout
	}

	// Bools cannot distinguish unset from false: either source enables them
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser

	return result
}

func parsePositiveDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid '%s' %q: %w", field, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config error: '%s' must be positive", field)
	}
	return d, nil
}
