package main

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/jsbridge/convert"
	"github.com/wippyai/jsbridge/engine"
	"github.com/wippyai/jsbridge/errors"
)

// Output modes
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputDump = "dump"
)

// Config is the jsconv configuration file layout.
type Config struct {
	Engine   engine.Config    `yaml:"engine"`
	Type     string           `yaml:"type"`
	Strict   bool             `yaml:"strict"`
	Behavior convert.Behavior `yaml:"behavior"`
	Output   string           `yaml:"output"`
	Log      LogConfig        `yaml:"log"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() Config {
	return Config{
		Type:   "any",
		Output: OutputText,
		Log:    LogConfig{Level: "warn"},
	}
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, configError(err, "parse %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := convert.ParseType(c.Type); err != nil {
		return configError(err, "type")
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputDump:
	default:
		return configError(nil, "unknown output %q", c.Output)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return configError(err, "log level")
	}
	if c.Engine.MaxCallStackSize < 0 {
		return configError(nil, "max_call_stack_size must not be negative")
	}
	return nil
}

// Build creates the process logger.
func (c LogConfig) Build() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, configError(err, "log level")
	}
	zc.Level = level
	return zc.Build()
}

func configError(cause error, format string, args ...any) error {
	return errors.New(errors.PhaseConfig, errors.KindType).
		Detail(format, args...).
		Cause(cause).
		Build()
}
