// Package config loads the configuration of the catalog simulation driver.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/prodcat"
)

// Mix weights the operations issued by each worker. Weights are relative and
// need not add up to one.
type Mix struct {
	Lookup   float64 `yaml:"lookup"`
	Replace  float64 `yaml:"replace"`
	MatchAll float64 `yaml:"match_all"`
	MatchAny float64 `yaml:"match_any"`
}

// Total returns the sum of all weights.
func (m Mix) Total() float64 {
	return m.Lookup + m.Replace + m.MatchAll + m.MatchAny
}

// Report controls the final report.
type Report struct {
	CSV     bool `yaml:"csv"`
	Verbose bool `yaml:"verbose"`
}

// Log controls structured logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config describes one simulation run.
type Config struct {
	Capacity         int           `yaml:"capacity"`
	Strategy         string        `yaml:"strategy"`
	MatchAll         string        `yaml:"match_all"`
	Workers          int           `yaml:"workers"`
	Duration         time.Duration `yaml:"duration"`
	OpsPerWorker     int           `yaml:"ops_per_worker"`
	RateLimit        float64       `yaml:"rate_limit"`
	KeywordsPerQuery int           `yaml:"keywords_per_query"`
	RebuildInterval  time.Duration `yaml:"rebuild_interval"`
	NameWords        int           `yaml:"name_words"`
	DescriptionWords int           `yaml:"description_words"`
	Seed             uint64        `yaml:"seed"`
	Mix              Mix           `yaml:"mix"`
	Report           Report        `yaml:"report"`
	Log              Log           `yaml:"log"`
}

// DefaultConfig returns a configuration for a short local run.
func DefaultConfig() Config {
	return Config{
		Capacity:         10_000,
		Strategy:         prodcat.Exclusive.String(),
		MatchAll:         prodcat.DefaultMatchAll.String(),
		Workers:          8,
		Duration:         5 * time.Second,
		KeywordsPerQuery: 2,
		RebuildInterval:  100 * time.Millisecond,
		NameWords:        2,
		DescriptionWords: 8,
		Mix: Mix{
			Lookup:   0.5,
			Replace:  0.1,
			MatchAll: 0.2,
			MatchAny: 0.2,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML configuration file at path over the defaults using
// strict parsing. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads a YAML configuration from r over the defaults and validates it.
func Decode(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every problem of c.
func (c Config) Validate() error {
	var errs []error
	if c.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity must be positive, got %d", c.Capacity))
	}
	if _, err := prodcat.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := prodcat.ParseMatchAllAlgorithm(c.MatchAll); err != nil {
		errs = append(errs, err)
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Duration <= 0 && c.OpsPerWorker <= 0 {
		errs = append(errs, errors.New("one of duration and ops_per_worker must be positive"))
	}
	if c.OpsPerWorker < 0 {
		errs = append(errs, fmt.Errorf("ops_per_worker must not be negative, got %d", c.OpsPerWorker))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit must not be negative, got %g", c.RateLimit))
	}
	if c.KeywordsPerQuery < 0 {
		errs = append(errs, fmt.Errorf("keywords_per_query must not be negative, got %d", c.KeywordsPerQuery))
	}
	if c.RebuildInterval <= 0 {
		errs = append(errs, fmt.Errorf("rebuild_interval must be positive, got %s", c.RebuildInterval))
	}
	if c.NameWords <= 0 || c.DescriptionWords <= 0 {
		errs = append(errs, errors.New("name_words and description_words must be positive"))
	}
	if c.Mix.Lookup < 0 || c.Mix.Replace < 0 || c.Mix.MatchAll < 0 || c.Mix.MatchAny < 0 {
		errs = append(errs, errors.New("mix weights must not be negative"))
	} else if c.Mix.Total() == 0 {
		errs = append(errs, errors.New("mix weights must not all be zero"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Options translates c into store options. c must be valid.
func (c Config) Options() []prodcat.Option {
	strategy, _ := prodcat.ParseStrategy(c.Strategy)
	matchAll, _ := prodcat.ParseMatchAllAlgorithm(c.MatchAll)
	return []prodcat.Option{
		prodcat.WithStrategy(strategy),
		prodcat.WithMatchAllAlgorithm(matchAll),
		prodcat.WithCSVReport(c.Report.CSV),
	}
}

// SlogLevel parses the configured log level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
