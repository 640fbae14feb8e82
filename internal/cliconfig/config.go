package cliconfig

import (
	"fmt"
	"strconv"

	"github.com/bft-labs/excise/internal/domain"
)

// Defaults match the observed corruption in the stylesheet this tool was
// written for.
const (
	DefaultFile         = "app/globals.css"
	DefaultKeepStart    = 720
	DefaultKeepResumeAt = 915
	DefaultMinLines     = 900
)

// Config holds CLI configuration for excise.
type Config struct {
	File         string
	KeepStart    int
	KeepResumeAt int
	MinLines     int
	Atomic       bool
	DryRun       bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		File:         DefaultFile,
		KeepStart:    DefaultKeepStart,
		KeepResumeAt: DefaultKeepResumeAt,
		MinLines:     DefaultMinLines,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("file is required")
	}
	if c.MinLines < 0 {
		return fmt.Errorf("min-lines must not be negative")
	}
	if _, err := c.Range(); err != nil {
		return err
	}
	return nil
}

// Range returns the excision range described by the configuration.
func (c *Config) Range() (domain.Range, error) {
	return domain.NewRange(c.KeepStart, c.KeepResumeAt)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value from a pointer if not nil and flag not changed.
// Zero is a valid index, so absence is expressed with nil.
func (s *configSetter) setInt(flag string, value *int, dst *int) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if *value < 0 {
		return fmt.Errorf("%s must not be negative, got %d", flag, *value)
	}
	*dst = *value
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	return s.setInt(flag, &i, dst)
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
