// Package config loads app configuration from an optional YAML file in
// the data directory, overridable via SUBSQUEEZE_* environment variables.
// Behavioral settings (default currency, reminder lead, budget) are not
// config; they live in the stored settings record.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

type Config struct {
	// Env selects the log handler: pretty text for local, JSON otherwise.
	Env string `mapstructure:"env"`
	// DataDir holds the JSON documents, the SQLite file and the optional
	// config file.
	DataDir string `mapstructure:"data_dir"`
	// Storage picks the backend: json or sqlite.
	Storage string `mapstructure:"storage"`
	// SQLitePath overrides the database location; empty means
	// DataDir/subsqueeze.db.
	SQLitePath string `mapstructure:"sqlite_path"`
	// LogLevel: debug, info, warn or error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads DataDir/config.yaml when present and applies environment
// overrides (SUBSQUEEZE_DATA_DIR, SUBSQUEEZE_STORAGE, ...).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUBSQUEEZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", EnvLocal)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("storage", StorageJSON)
	v.SetDefault("sqlite_path", "")
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; anything else is a real failure.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.Storage {
	case StorageJSON, StorageSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.DataDir, "subsqueeze.db")
	}
	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".subsqueeze"
	}
	return filepath.Join(home, ".subsqueeze")
}
