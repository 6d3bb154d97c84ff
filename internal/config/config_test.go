package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
capacity: 100
strategy: phased
duration: 250ms
rebuild_interval: 10ms
mix:
  lookup: 1
  replace: 1
  match_all: 0
  match_any: 0
report:
  csv: true
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Capacity)
	assert.Equal(t, "phased", cfg.Strategy)
	assert.Equal(t, 250*time.Millisecond, cfg.Duration)
	assert.Equal(t, 10*time.Millisecond, cfg.RebuildInterval)
	assert.Equal(t, 2.0, cfg.Mix.Total())
	assert.True(t, cfg.Report.CSV)
	assert.Equal(t, 8, cfg.Workers, "unset fields keep their defaults")

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	assert.Len(t, cfg.Options(), 3)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("capacity: 10\nshards: 4\n"))
	assert.ErrorContains(t, err, "shards")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"Capacity", func(c *Config) { c.Capacity = 0 }, "capacity"},
		{"Strategy", func(c *Config) { c.Strategy = "optimistic" }, "unknown strategy"},
		{"MatchAll", func(c *Config) { c.MatchAll = "bloom" }, "unknown match-all"},
		{"Workers", func(c *Config) { c.Workers = 0 }, "workers"},
		{"NoBound", func(c *Config) { c.Duration = 0 }, "duration and ops_per_worker"},
		{"RateLimit", func(c *Config) { c.RateLimit = -1 }, "rate_limit"},
		{"RebuildInterval", func(c *Config) { c.RebuildInterval = 0 }, "rebuild_interval"},
		{"ZeroMix", func(c *Config) { c.Mix = Mix{} }, "all be zero"},
		{"NegativeMix", func(c *Config) { c.Mix.Replace = -1 }, "negative"},
		{"LogLevel", func(c *Config) { c.Log.Level = "loud" }, "log level"},
		{"LogFormat", func(c *Config) { c.Log.Format = "xml" }, "log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: lock-free\nworkers: 2\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lock-free", cfg.Strategy)
	assert.Equal(t, 2, cfg.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
