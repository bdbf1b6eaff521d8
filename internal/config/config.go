// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys shared by flags, environment variables and the config file.
const (
	KeyDatabasePath = "database.path"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyRecentCount  = "report.recent"
	KeyDefaultRange = "report.range"
)

// DefaultDatabasePath is where the ledger lives unless configured otherwise.
const DefaultDatabasePath = "$HOME/.local/share/budget/budget.db"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string
	DefaultRange model.DateRange
	RecentCount  int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyRecentCount, 5)
	v.SetDefault(KeyDefaultRange, string(model.RangeMonth))
}

// Load reads the configuration from v.
// It follows this precedence:
// 1. Flags bound to v
// 2. BUDGET_ environment variables
// 3. The config file
// 4. Default values
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:    strings.ToLower(v.GetString(KeyLogFormat)),
		RecentCount:  v.GetInt(KeyRecentCount),
	}

	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return nil, fmt.Errorf("%w: %s cannot be empty", common.ErrInvalidConfig, KeyDatabasePath)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, cfg.LogFormat)
	}

	if _, err := common.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.RecentCount < 0 {
		return nil, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyRecentCount)
	}

	rng, err := model.ParseDateRange(v.GetString(KeyDefaultRange))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	cfg.DefaultRange = rng

	return cfg, nil
}
