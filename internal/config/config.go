// Package config resolves ordeal settings from defaults, an optional
// ordeal.yaml file, ORDEAL_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/ordeal/internal/diff"
	"github.com/roach88/ordeal/internal/fixture"
	"github.com/roach88/ordeal/internal/logging"
	"github.com/roach88/ordeal/internal/style"
)

// FileName is the config file searched for in the working directory.
const FileName = "ordeal"

// EnvPrefix prefixes environment overrides: ORDEAL_WIDTH, ORDEAL_LOG_LEVEL.
const EnvPrefix = "ORDEAL"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Config holds resolved settings.
type Config struct {
	Patterns []string      `mapstructure:"patterns"`
	Ignore   []string      `mapstructure:"ignore"`
	Color    string        `mapstructure:"color"`
	Diff     DiffConfig    `mapstructure:"diff"`
	Width    int           `mapstructure:"width"`
	Workers  int           `mapstructure:"workers"`
	History  HistoryConfig `mapstructure:"history"`
	Log      LogConfig     `mapstructure:"log"`
	Format   string        `mapstructure:"format"`
}

// DiffConfig selects the string diff algorithm.
type DiffConfig struct {
	Algorithm string `mapstructure:"algorithm"`
}

// HistoryConfig locates the run history database. An empty DB disables
// recording.
type HistoryConfig struct {
	DB string `mapstructure:"db"`
}

// LogConfig sets the diagnostic log level.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"color":      "color",
	"diff":       "diff.algorithm",
	"width":      "width",
	"workers":    "workers",
	"history-db": "history.db",
	"log-level":  "log.level",
	"format":     "format",
}

// New returns a viper instance carrying defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("patterns", fixture.DefaultPatterns)
	v.SetDefault("ignore", fixture.DefaultIgnore)
	v.SetDefault("color", style.ColorAuto)
	v.SetDefault("diff.algorithm", string(diff.AlgorithmPositional))
	v.SetDefault("width", 80)
	v.SetDefault("workers", 0)
	v.SetDefault("history.db", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every known flag present in fs. Flags only override the
// file and environment when set explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file and decodes the merged settings.
//
// With an explicit file, a missing file is an error. Otherwise ordeal.yaml is
// looked up in dir and silently skipped when absent.
func Load(v *viper.Viper, file, dir string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Patterns) == 0 {
		errs = append(errs, errors.New("patterns: at least one pattern is required"))
	}
	if !slices.Contains(style.ValidColorModes, c.Color) {
		errs = append(errs, fmt.Errorf("color: invalid mode %q: must be one of %v", c.Color, style.ValidColorModes))
	}
	if _, err := diff.ParseAlgorithm(c.Diff.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("diff.algorithm: %w", err))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width: must not be negative, got %d", c.Width))
	}
	if c.Workers < 0 || c.Workers > fixture.MaxWorkers {
		errs = append(errs, fmt.Errorf("workers: must be between 0 and %d, got %d", fixture.MaxWorkers, c.Workers))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !slices.Contains(ValidFormats, c.Format) {
		errs = append(errs, fmt.Errorf("format: invalid format %q: must be one of %v", c.Format, ValidFormats))
	}

	return errors.Join(errs...)
}

// DiffAlgorithm returns the validated diff algorithm.
func (c *Config) DiffAlgorithm() diff.Algorithm {
	a, err := diff.ParseAlgorithm(c.Diff.Algorithm)
	if err != nil {
		return diff.AlgorithmPositional
	}
	return a
}
