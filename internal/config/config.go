// Package config loads server configuration from an optional YAML file,
// PLANNER_* environment variables and built-in defaults, in that order of
// increasing precedence for env over file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends selectable via storage.backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config is the top-level server configuration.
type Config struct {
	Addr    string        `mapstructure:"addr"`
	GinMode string        `mapstructure:"gin_mode"`
	Storage StorageConfig `mapstructure:"storage"`
}

// StorageConfig selects and parameterizes the entity store backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from path when given; a missing file is fine and
// leaves defaults and environment values in effect.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("storage.backend", BackendMemory)
	v.SetDefault("storage.path", "data/planner.db")

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Storage.Backend != BackendMemory && cfg.Storage.Backend != BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return &cfg, nil
}
