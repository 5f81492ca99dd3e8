// Package config loads application settings from defaults, an optional
// config file, EBBINGHAUS_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultDir is the data directory under the user's home.
	DefaultDir = ".ebbinghaus"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "EBBINGHAUS"

	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config is the complete application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Review  ReviewConfig  `mapstructure:"review"`
}

// StorageConfig selects and locates the key/value substrate.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"` // "sqlite" or "file"
	Path       string `mapstructure:"path"`
	QuotaBytes int    `mapstructure:"quota_bytes"` // per value, 0 disables
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// ReviewConfig tunes the interactive review loop.
type ReviewConfig struct {
	ShowContent bool `mapstructure:"show_content"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// EBBINGHAUS_DB is the short form kept for scripts.
	_ = v.BindEnv("storage.path", EnvPrefix+"_DB", EnvPrefix+"_STORAGE_PATH")
	return v
}

// Load reads the config file (explicit path, or config.yaml in the data
// directory when present) and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, DefaultDir))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultPath(cfg.Storage.Backend)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// DefaultPath returns the default storage location for backend.
func DefaultPath(backend string) string {
	home, _ := os.UserHomeDir()
	if backend == BackendFile {
		return filepath.Join(home, DefaultDir, "kv")
	}
	return filepath.Join(home, DefaultDir, "ebbinghaus.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.quota_bytes", 5*1024*1024)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("review.show_content", false)
}

func validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("storage.backend must be '%s' or '%s', got '%s'", BackendSQLite, BackendFile, cfg.Storage.Backend)
	}
	if cfg.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage.quota_bytes must not be negative, got %d", cfg.Storage.QuotaBytes)
	}
	return nil
}
