// Package config provides Viper-based configuration loading for the
// encounter engine and its simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DataConfig holds static-table loading settings.
type DataConfig struct {
	// Dir is the directory holding YAML table overrides. Empty means the
	// built-in defaults are used unmodified.
	Dir string `mapstructure:"dir"`
}

// ScriptsConfig holds Lua hook-script settings.
type ScriptsConfig struct {
	// Dir is the directory of *.lua hook files. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps Lua opcodes per hook call; 0 uses the
	// sandbox default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// SimConfig holds the travel simulator settings.
type SimConfig struct {
	// Seed feeds the deterministic random source; 0 selects the
	// crypto-backed source instead.
	Seed int64 `mapstructure:"seed"`
	// Days is the number of travel days to simulate.
	Days int `mapstructure:"days"`
	// Difficulty is the game difficulty, 0 (beginner) through 4
	// (impossible).
	Difficulty int `mapstructure:"difficulty"`
	// Commander is the commander name used in messages.
	Commander string `mapstructure:"commander"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Data    DataConfig    `mapstructure:"data"`
	Scripts ScriptsConfig `mapstructure:"scripts"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripts(c.Scripts); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSim(c.Sim); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateScripts(s ScriptsConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripts.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

func validateSim(s SimConfig) error {
	var errs []string
	if s.Days < 1 {
		errs = append(errs, fmt.Sprintf("sim.days must be >= 1, got %d", s.Days))
	}
	if s.Difficulty < 0 || s.Difficulty > 4 {
		errs = append(errs, fmt.Sprintf("sim.difficulty must be 0-4, got %d", s.Difficulty))
	}
	if s.Commander == "" {
		errs = append(errs, "sim.commander must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TRADER_ prefix
	v.SetEnvPrefix("TRADER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
//
// Postcondition: The returned Config passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Unmarshalling pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("data.dir", "")

	v.SetDefault("scripts.dir", "")
	v.SetDefault("scripts.instruction_limit", 0)

	v.SetDefault("sim.seed", 42)
	v.SetDefault("sim.days", 30)
	v.SetDefault("sim.difficulty", 2)
	v.SetDefault("sim.commander", "Jameson")
}
