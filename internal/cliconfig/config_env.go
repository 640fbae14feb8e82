package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (EXCISE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("file", os.Getenv("EXCISE_FILE"), &cfg.File)

	if err := s.setIntFromString("keep-start", os.Getenv("EXCISE_KEEP_START"), &cfg.KeepStart); err != nil {
		return err
	}
	if err := s.setIntFromString("resume-at", os.Getenv("EXCISE_RESUME_AT"), &cfg.KeepResumeAt); err != nil {
		return err
	}
	if err := s.setIntFromString("min-lines", os.Getenv("EXCISE_MIN_LINES"), &cfg.MinLines); err != nil {
		return err
	}

	s.setBoolFromString("atomic", os.Getenv("EXCISE_ATOMIC"), &cfg.Atomic)
	s.setBoolFromString("dry-run", os.Getenv("EXCISE_DRY_RUN"), &cfg.DryRun)

	return nil
}
