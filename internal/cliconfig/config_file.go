package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for TOML. Pointers distinguish unset from zero.
type FileConfig struct {
	File         string `toml:"file"`
	KeepStart    *int   `toml:"keep_start"`
	KeepResumeAt *int   `toml:"resume_at"`
	MinLines     *int   `toml:"min_lines"`
	Atomic       *bool  `toml:"atomic"`
	DryRun       *bool  `toml:"dry_run"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.excise/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".excise", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", fc.File, &cfg.File)

	if err := s.setInt("keep-start", fc.KeepStart, &cfg.KeepStart); err != nil {
		return err
	}
	if err := s.setInt("resume-at", fc.KeepResumeAt, &cfg.KeepResumeAt); err != nil {
		return err
	}
	if err := s.setInt("min-lines", fc.MinLines, &cfg.MinLines); err != nil {
		return err
	}

	s.setBool("atomic", fc.Atomic, &cfg.Atomic)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
