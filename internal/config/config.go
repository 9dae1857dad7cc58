// Package config loads the YAML configuration shared by the inflect
// commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cours-de-latin/inflect"
)

// Config holds all inflect configuration.
type Config struct {
	// Language is the corpus language code; data files are named after it.
	Language string `yaml:"language"`

	Data     DataConfig     `yaml:"data"`
	Cache    CacheConfig    `yaml:"cache"`
	Align    inflect.Costs  `yaml:"align"`
	Override OverrideConfig `yaml:"override"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Split    SplitConfig    `yaml:"split"`
}

// DataConfig locates the corpus files.
type DataConfig struct {
	Dir string `yaml:"dir"`
	// File names relative to Dir. Empty names default to
	// <language>.trn, .dev, .tst and .out.
	Train  string `yaml:"train"`
	Dev    string `yaml:"dev"`
	Test   string `yaml:"test"`
	Output string `yaml:"output"`
	// Reference is the corpus searched for infinitives; defaults to Dev.
	Reference string `yaml:"reference"`
	// Columns is "lemma,msd,form" or "lemma,form,msd".
	Columns      string `yaml:"columns"`
	SkipCompound bool   `yaml:"skip_compound"`
}

// CacheConfig locates the persisted bias and rule tables.
type CacheConfig struct {
	Dir        string `yaml:"dir"`
	BiasFile   string `yaml:"bias_file"`
	PrefixFile string `yaml:"prefix_rules"`
	SuffixFile string `yaml:"suffix_rules"`
}

// OverrideConfig controls the Latin conjugation override.
type OverrideConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Exceptions []string `yaml:"exceptions"`
}

// ServerConfig configures the REST server.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Watch reloads the model when the cache artifacts change.
	Watch           bool   `yaml:"watch"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// SplitConfig sizes the split command's output.
type SplitConfig struct {
	DevFraction  float64 `yaml:"dev_fraction"`
	TestFraction float64 `yaml:"test_fraction"`
	Seed         uint64  `yaml:"seed"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Language: "lat",
		Data: DataConfig{
			Dir:          "Latin_stuff",
			Columns:      string(inflect.LemmaMSDForm),
			SkipCompound: true,
		},
		Cache: CacheConfig{
			Dir:        ".",
			BiasFile:   "prefsuffbias",
			PrefixFile: "prules.gob",
			SuffixFile: "srules.gob",
		},
		Align: inflect.RuleCosts,
		Override: OverrideConfig{
			Enabled:    true,
			Exceptions: []string{"Icarūsa"},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			Watch:           true,
			ReadTimeout:     "30s",
			WriteTimeout:    "30s",
			ShutdownTimeout: "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Split: SplitConfig{
			DevFraction:  1.0 / 12,
			TestFraction: 1.0 / 12,
			Seed:         56,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("INFLECT_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
	if dir := os.Getenv("INFLECT_CACHE_DIR"); dir != "" {
		c.Cache.Dir = dir
	}
	if addr := os.Getenv("INFLECT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("INFLECT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration for values no command can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Language == "" {
		errs = append(errs, errors.New("language is required"))
	}
	if !inflect.Columns(c.Data.Columns).Valid() {
		errs = append(errs, fmt.Errorf("data.columns: unknown layout %q", c.Data.Columns))
	}
	if c.Align.Insert <= 0 || c.Align.Delete <= 0 || c.Align.Substitute <= 0 {
		errs = append(errs, errors.New("align: costs must be positive"))
	}
	if c.Split.DevFraction < 0 || c.Split.TestFraction < 0 || c.Split.DevFraction+c.Split.TestFraction >= 1 {
		errs = append(errs, errors.New("split: fractions must be non-negative and sum below 1"))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

func (c *Config) dataFile(name, ext string) string {
	if name == "" {
		name = c.Language + ext
	}
	return filepath.Join(c.Data.Dir, name)
}

// TrainPath returns the training corpus path.
func (c *Config) TrainPath() string { return c.dataFile(c.Data.Train, ".trn") }

// DevPath returns the development corpus path.
func (c *Config) DevPath() string { return c.dataFile(c.Data.Dev, ".dev") }

// TestPath returns the test corpus path.
func (c *Config) TestPath() string { return c.dataFile(c.Data.Test, ".tst") }

// OutputPath returns the path predictions are written to.
func (c *Config) OutputPath() string { return c.dataFile(c.Data.Output, ".out") }

// ReferencePath returns the corpus searched for infinitives.
func (c *Config) ReferencePath() string {
	if c.Data.Reference == "" {
		return c.DevPath()
	}
	return filepath.Join(c.Data.Dir, c.Data.Reference)
}

// Format returns the corpus layout.
func (c *Config) Format() inflect.Format {
	return inflect.Format{
		Columns:      inflect.Columns(c.Data.Columns),
		SkipCompound: c.Data.SkipCompound,
	}
}

// NewCache returns the cache described by the configuration.
func (c *Config) NewCache() *inflect.Cache {
	return &inflect.Cache{
		Dir:        c.Cache.Dir,
		BiasFile:   c.Cache.BiasFile,
		PrefixFile: c.Cache.PrefixFile,
		SuffixFile: c.Cache.SuffixFile,
	}
}

// Options returns the inflect.Open options for the training corpus.
func (c *Config) Options() inflect.Options {
	opts := inflect.Options{
		TrainPath:     c.TrainPath(),
		ReferencePath: c.ReferencePath(),
		Format:        c.Format(),
		Cache:         c.NewCache(),
		Costs:         c.Align,
	}
	if c.Override.Enabled {
		opts.Conjugation = inflect.LatinConjugation(c.Override.Exceptions...)
	}
	return opts
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 30*time.Second)
}

// GetWriteTimeout returns the server write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 30*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
