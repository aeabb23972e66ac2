// Package config handles loading and managing genaidss configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/genaidss/genaidss/pkg/catalog"
)

// Config is the top-level configuration for genaidss.
type Config struct {
	CatalogPath string        `yaml:"catalog_path"` // empty = built-in reference catalog
	Wizard      WizardConfig  `yaml:"wizard"`
	Server      ServerConfig  `yaml:"server"`
	Logging     LoggingConfig `yaml:"logging"`
	Export      ExportConfig  `yaml:"export"`
}

// WizardConfig controls the wizard step guards.
type WizardConfig struct {
	DefaultDepartment   string `yaml:"default_department"`
	RequireValidWeights bool   `yaml:"require_valid_weights"`
	RequireFullRatings  bool   `yaml:"require_full_ratings"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	MetricsAddr   string `yaml:"metrics_addr"`
	AllowedOrigin string `yaml:"allowed_origin"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// ExportConfig selects where result exports are published.
type ExportConfig struct {
	Sink      string `yaml:"sink"` // local, s3, gcs
	Dir       string `yaml:"dir"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint, e.g. MinIO
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Wizard: WizardConfig{
			DefaultDepartment:   "hcd",
			RequireValidWeights: true,
		},
		Server: ServerConfig{
			Addr:          ":8700",
			MetricsAddr:   ":8701",
			AllowedOrigin: "*",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Export: ExportConfig{
			Sink:   "local",
			Prefix: "genaidss",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .genaidss/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".genaidss", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// ApplyEnv overrides config values from GENAIDSS_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("GENAIDSS_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("GENAIDSS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GENAIDSS_METRICS_ADDR"); v != "" {
		cfg.Server.MetricsAddr = v
	}
	if v := os.Getenv("GENAIDSS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GENAIDSS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("GENAIDSS_EXPORT_SINK"); v != "" {
		cfg.Export.Sink = v
	}
	if v := os.Getenv("GENAIDSS_EXPORT_BUCKET"); v != "" {
		cfg.Export.Bucket = v
	}
	if v := os.Getenv("GENAIDSS_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("GENAIDSS_REQUIRE_VALID_WEIGHTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Wizard.RequireValidWeights = b
		}
	}
}

// LoadCatalog returns the configured catalog, or the built-in reference
// catalog when no path is set.
func LoadCatalog(cfg *Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// CacheDir returns ~/.cache/genaidss.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "genaidss")
}

// ExportDir returns the local export directory.
func ExportDir(cfg *Config) string {
	if cfg.Export.Dir != "" {
		return cfg.Export.Dir
	}
	return filepath.Join(CacheDir(), "exports")
}
