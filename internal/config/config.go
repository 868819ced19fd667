// Package config loads cadpost.yaml and resolves runtime settings from
// defaults, the project file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "cadpost.yaml"

// Log formats accepted by logging.format and --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Environment variables that override cadpost.yaml.
const (
	EnvOutput        = "CADPOST_OUTPUT"
	EnvLogFormat     = "CADPOST_LOG_FORMAT"
	EnvWatchDebounce = "CADPOST_WATCH_DEBOUNCE"
	EnvInlineArrays  = "CADPOST_INLINE_ARRAYS"
)

type OutputConfig struct {
	Path         string `yaml:"path,omitempty"`
	InlineArrays *bool  `yaml:"inline_arrays,omitempty"`
}

type LoggingConfig struct {
	Format string `yaml:"format,omitempty"`
}

type WatchConfig struct {
	Debounce string `yaml:"debounce,omitempty"`
}

type ProjectConfig struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// Settings are the effective values after every layer has been applied.
type Settings struct {
	OutputPath    string
	InlineArrays  bool
	LogFormat     string
	WatchDebounce time.Duration
}

// Defaults returns the settings used when nothing is configured.
// An empty OutputPath means cadpost.DefaultOutputFile inside the input directory.
func Defaults() Settings {
	return Settings{
		InlineArrays:  true,
		LogFormat:     LogFormatConsole,
		WatchDebounce: cadpost.DefaultWatchDebounce,
	}
}

func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", cadpost.ErrInvalidConfig, ConfigFileName, err)
	}
	return &cfg, nil
}

// Apply overlays the project file onto s. A relative output.path is
// resolved against sourcePath.
func (c *ProjectConfig) Apply(s *Settings, sourcePath string) error {
	if c == nil {
		return nil
	}
	if c.Output.Path != "" {
		s.OutputPath = c.Output.Path
		if !filepath.IsAbs(s.OutputPath) {
			s.OutputPath = filepath.Join(sourcePath, s.OutputPath)
		}
	}
	if c.Output.InlineArrays != nil {
		s.InlineArrays = *c.Output.InlineArrays
	}
	if c.Logging.Format != "" {
		format, err := ParseLogFormat(c.Logging.Format)
		if err != nil {
			return fmt.Errorf("invalid logging.format in %s: %w", ConfigFileName, err)
		}
		s.LogFormat = format
	}
	if c.Watch.Debounce != "" {
		d, err := ParseDebounce(c.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("invalid watch.debounce in %s: %w", ConfigFileName, err)
		}
		s.WatchDebounce = d
	}
	return nil
}

// ApplyEnv overlays environment variables onto s. Empty variables are ignored.
func ApplyEnv(s *Settings, getenv func(string) string) error {
	if v := getenv(EnvOutput); v != "" {
		s.OutputPath = v
	}
	if v := getenv(EnvInlineArrays); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", cadpost.ErrInvalidConfig, EnvInlineArrays, v)
		}
		s.InlineArrays = b
	}
	if v := getenv(EnvLogFormat); v != "" {
		format, err := ParseLogFormat(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLogFormat, err)
		}
		s.LogFormat = format
	}
	if v := getenv(EnvWatchDebounce); v != "" {
		d, err := ParseDebounce(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvWatchDebounce, err)
		}
		s.WatchDebounce = d
	}
	return nil
}

// Resolve loads cadpost.yaml from sourcePath (if present) and environment
// overrides on top of the defaults.
func Resolve(sourcePath string, getenv func(string) string) (Settings, error) {
	s := Defaults()

	cfg, err := Load(sourcePath)
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return s, err
	}
	if err := cfg.Apply(&s, sourcePath); err != nil {
		return s, err
	}
	if err := ApplyEnv(&s, getenv); err != nil {
		return s, err
	}
	return s, nil
}

// OutputPathFor returns the configured output path, or the default file
// inside sourcePath.
func (s Settings) OutputPathFor(sourcePath string) string {
	if s.OutputPath != "" {
		return s.OutputPath
	}
	return filepath.Join(sourcePath, cadpost.DefaultOutputFile)
}

func ParseLogFormat(v string) (string, error) {
	switch v {
	case LogFormatConsole, LogFormatJSON:
		return v, nil
	default:
		return "", fmt.Errorf("%w: log format %q (expected %q or %q)", cadpost.ErrInvalidConfig, v, LogFormatConsole, LogFormatJSON)
	}
}

func ParseDebounce(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", cadpost.ErrInvalidConfig, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: debounce %s must not be negative", cadpost.ErrInvalidConfig, v)
	}
	return d, nil
}
