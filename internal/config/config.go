// Package config provides configuration loading for prv.
//
// Configuration loads in three layers, lowest precedence first:
// hardcoded defaults, an optional YAML file, then environment
// variables. The field set here covers only what the matcher, the
// catalogue reader, and the link store need.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds the complete prv configuration.
type Config struct {
	Matcher MatcherConfig `koanf:"matcher"`
	Cass    CassConfig    `koanf:"cass"`
	Store   StoreConfig   `koanf:"store"`
	Logging LoggingConfig `koanf:"logging"`
}

// MatcherConfig controls the candidate gate.
type MatcherConfig struct {
	// IndexWindow overrides the candidate gate's time window (default
	// 7 days). Widening it helps operators on machines with clocks
	// that drift relative to the catalogue's.
	IndexWindow Duration `koanf:"index_window"`
}

// CassConfig points at the session catalogue database.
type CassConfig struct {
	// DBPath is the path to the CASS SQLite database. Empty means use
	// the platform default (DefaultCassDBPath).
	DBPath string `koanf:"db_path"`
}

// StoreConfig controls where durable link records live.
type StoreConfig struct {
	// Dir overrides the link store's directory name, default ".prv".
	Dir string `koanf:"dir"`
}

// LoggingConfig selects the logger's level and encoding. Translated
// into a logging.Config by the command that constructs the logger;
// kept separate here so this package never imports internal/logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format string `koanf:"format"` // "json" or "console"
}

// Validate checks the configuration for values that would make the
// CLI behave unpredictably rather than simply fail to find a match.
func (c *Config) Validate() error {
	if c.Matcher.IndexWindow.Duration() <= 0 {
		return errors.New("matcher.index_window must be positive")
	}

	if c.Store.Dir == "" {
		return errors.New("store.dir must not be empty")
	}
	if err := validatePath(c.Store.Dir); err != nil {
		return fmt.Errorf("invalid store.dir: %w", err)
	}

	if c.Cass.DBPath != "" {
		if err := validatePath(c.Cass.DBPath); err != nil {
			return fmt.Errorf("invalid cass.db_path: %w", err)
		}
	}

	switch c.Logging.Format {
	case "json", "console", "":
	default:
		return fmt.Errorf("invalid logging.format: %q (must be json or console)", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	return nil
}

// validatePath rejects path traversal sequences in any externally
// supplied filesystem path.
func validatePath(path string) error {
	if strings.Contains(path, "..") {
		return fmt.Errorf("path contains traversal sequence: %s", path)
	}
	return nil
}
