package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/the-budget-must-balance/internal/common"
	"github.com/Veraticus/the-budget-must-balance/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "/home/tester/.local/share/budget/budget.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 5, cfg.RecentCount)
	assert.Equal(t, model.RangeMonth, cfg.DefaultRange)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set(KeyDatabasePath, "/tmp/ledger.db")
	v.Set(KeyLogLevel, "DEBUG")
	v.Set(KeyLogFormat, "json")
	v.Set(KeyRecentCount, 10)
	v.Set(KeyDefaultRange, "year")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ledger.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10, cfg.RecentCount)
	assert.Equal(t, model.RangeYear, cfg.DefaultRange)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "database:\n  path: " + filepath.Join(dir, "budget.db") + "\nreport:\n  range: quarter\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "budget.db"), cfg.DatabasePath)
	assert.Equal(t, model.RangeQuarter, cfg.DefaultRange)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"log level", KeyLogLevel, "loud"},
		{"log format", KeyLogFormat, "xml"},
		{"recent count", KeyRecentCount, -1},
		{"date range", KeyDefaultRange, "fortnight"},
		{"empty database path", KeyDatabasePath, " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("LEDGER_DIR", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{":memory:", ":memory:"},
		{"~", "/home/tester"},
		{"~/budget.db", "/home/tester/budget.db"},
		{"$LEDGER_DIR/budget.db", "/data/budget.db"},
		{"/abs/budget.db", "/abs/budget.db"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
