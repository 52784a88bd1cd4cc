package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalidProtectionLevel indicates protection_level was negative.
var ErrInvalidProtectionLevel = errors.New("config: protection_level must be >= 0")

// ErrInvalidLogFormat indicates log_format was neither "text" nor "json".
var ErrInvalidLogFormat = errors.New("config: log_format must be \"text\" or \"json\"")

// DefaultProtectionLevel is F's value when protection_level is omitted.
const DefaultProtectionLevel = 3

// Config holds the control plane's tunables, loaded from YAML.
type Config struct {
	// ProtectionLevel is F, the per-link protection depth (§4.3).
	ProtectionLevel int `yaml:"protection_level"`
	// LogLevel is a logrus.ParseLevel-compatible string (default "info").
	LogLevel string `yaml:"log_level"`
	// LogFormat is "text" or "json" (default "text").
	LogFormat string `yaml:"log_format"`
}

// defaults returns the zero-value Config's baseline before YAML overrides it.
func defaults() Config {
	return Config{
		ProtectionLevel: DefaultProtectionLevel,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads and validates a Config from path. Fields absent from the file
// keep their default value.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse validates a Config from raw YAML bytes.
func Parse(raw []byte) (*Config, error) {
	cfg := defaults()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.ProtectionLevel < 0 {
		return fmt.Errorf("config: protection_level=%d: %w", c.ProtectionLevel, ErrInvalidProtectionLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config: log_format=%q: %w", c.LogFormat, ErrInvalidLogFormat)
	}
	return nil
}

// Logger builds a logrus.FieldLogger honoring LogLevel/LogFormat. An
// unparseable LogLevel falls back to logrus.InfoLevel.
func (c Config) Logger() logrus.FieldLogger {
	log := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{})
	}
	return log
}
