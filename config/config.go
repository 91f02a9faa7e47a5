// Package config loads the machine and logging configuration and assembles
// a ready-to-use platform from it.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// MachineConfig configures the register machine.
type MachineConfig struct {
	FreqGHz       float64 `yaml:"freq_ghz"`
	StrictOpcodes bool    `yaml:"strict_opcodes"`
	PrintState    bool    `yaml:"print_state"`
	Trace         bool    `yaml:"trace"`
}

// Config is the top level configuration.
type Config struct {
	Machine MachineConfig `yaml:"machine"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Machine: MachineConfig{
			FreqGHz: 1,
		},
		Log: DefaultLogConfig(),
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	return Parse(data)
}

// Parse decodes a YAML configuration document on top of Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Machine.FreqGHz <= 0 {
		return fmt.Errorf("%w: machine.freq_ghz must be positive, got %v",
			ErrInvalid, c.Machine.FreqGHz)
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}

	return nil
}
