// Package config holds the options that shape the explanation trace.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level selects how much explanation each step carries.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelDetailed     Level = "detailed"
	LevelScaffolded   Level = "scaffolded"
)

// Levels lists the explanation levels from least to most support.
var Levels = []Level{LevelBasic, LevelIntermediate, LevelDetailed, LevelScaffolded}

// ParseLevel accepts a level name case-insensitively.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Levels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("explanation_level must be one of basic, intermediate, detailed, scaffolded (got %q)", s)
}

// Config controls step synthesis. The solver and verifier ignore it.
type Config struct {
	// ExplanationLevel picks the adaptive register and whether the
	// enhancement and scaffolding passes run.
	// Default: intermediate
	ExplanationLevel Level `yaml:"explanation_level" json:"explanation_level"`

	// IncludeVerification appends a verification entry to the trace.
	// Default: true
	IncludeVerification bool `yaml:"include_verification" json:"include_verification"`

	// IncludeErrorPrevention attaches common mistakes, checkpoints and
	// self-checks to each step.
	// Default: true
	IncludeErrorPrevention bool `yaml:"include_error_prevention" json:"include_error_prevention"`

	// IncludeBridges inserts connective entries between steps.
	// Default: true
	IncludeBridges bool `yaml:"include_bridges" json:"include_bridges"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ExplanationLevel:       LevelIntermediate,
		IncludeVerification:    true,
		IncludeErrorPrevention: true,
		IncludeBridges:         true,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := ParseLevel(string(c.ExplanationLevel)); err != nil {
		return err
	}
	return nil
}

// Enhanced reports whether the enhancement pass runs.
func (c Config) Enhanced() bool { return c.ExplanationLevel != LevelBasic }

// Scaffolded reports whether the scaffolding pass runs.
func (c Config) Scaffolded() bool { return c.ExplanationLevel == LevelScaffolded }

func (c Config) String() string {
	return fmt.Sprintf("Config{Level: %s, Verification: %t, ErrorPrevention: %t, Bridges: %t}",
		c.ExplanationLevel, c.IncludeVerification, c.IncludeErrorPrevention, c.IncludeBridges)
}

// fileConfig mirrors Config with pointers so keys absent from the file keep
// their defaults.
type fileConfig struct {
	ExplanationLevel       *string `yaml:"explanation_level"`
	IncludeVerification    *bool   `yaml:"include_verification"`
	IncludeErrorPrevention *bool   `yaml:"include_error_prevention"`
	IncludeBridges         *bool   `yaml:"include_bridges"`
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then the environment.
//
// Environment variables:
//   - WORKBOOK_EXPLANATION_LEVEL: basic, intermediate, detailed or scaffolded
//   - WORKBOOK_INCLUDE_VERIFICATION: append the verification entry
//   - WORKBOOK_INCLUDE_ERROR_PREVENTION: attach error-prevention records
//   - WORKBOOK_INCLUDE_BRIDGES: insert bridge entries
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cfg.merge(data); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid workbook configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) merge(data []byte) error {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if fc.ExplanationLevel != nil {
		c.ExplanationLevel = Level(strings.ToLower(strings.TrimSpace(*fc.ExplanationLevel)))
	}
	if fc.IncludeVerification != nil {
		c.IncludeVerification = *fc.IncludeVerification
	}
	if fc.IncludeErrorPrevention != nil {
		c.IncludeErrorPrevention = *fc.IncludeErrorPrevention
	}
	if fc.IncludeBridges != nil {
		c.IncludeBridges = *fc.IncludeBridges
	}
	return nil
}

// ApplyEnv overrides fields from WORKBOOK_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := parseEnvLevel("WORKBOOK_EXPLANATION_LEVEL", &c.ExplanationLevel); err != nil {
		return err
	}
	if err := parseEnvBool("WORKBOOK_INCLUDE_VERIFICATION", &c.IncludeVerification); err != nil {
		return err
	}
	if err := parseEnvBool("WORKBOOK_INCLUDE_ERROR_PREVENTION", &c.IncludeErrorPrevention); err != nil {
		return err
	}
	if err := parseEnvBool("WORKBOOK_INCLUDE_BRIDGES", &c.IncludeBridges); err != nil {
		return err
	}
	return nil
}

func parseEnvLevel(key string, dest *Level) error {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}
	l, err := ParseLevel(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = l
	return nil
}

func parseEnvBool(key string, dest *bool) error {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q (must be true or false)", key, value)
	}
	*dest = b
	return nil
}
