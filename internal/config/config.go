// Package config holds runtime configuration: defaults, flag and config-file
// binding, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// DefaultLogFile is the log file name used when logging is enabled and no
// explicit path is given. It is relative to the working directory.
const DefaultLogFile = "file_organizer.log"

// Config holds all runtime settings for one invocation. It is built by
// [DefaultConfig] and [Load], validated once, and treated as read-only
// afterwards.
type Config struct {
	// Paths.
	SourceDir string // Default: ~/Downloads.
	DestRoot  string // Default: same as SourceDir.
	RulesFile string // Optional YAML category table.

	// Behavior flags.
	DryRun   bool
	ByDate   bool
	Ignore   []string // Glob patterns matched against base names.
	Monitor  bool
	Interval time.Duration // Default: 60s.
	Watch    bool          // Wake the monitor loop on filesystem events.
	Debounce time.Duration // Default: 2s. Coalesces watch events.

	// Logging.
	LogEnabled    bool   // Default: true. Cleared by --no-log.
	LogFile       string // Default: DefaultLogFile.
	LogMaxSizeMB  int    // Default: 10.
	LogMaxBackups int    // Default: 3.
	LogMaxAgeDays int    // Default: 30.

	// Display.
	Verbose   bool
	Progress  bool
	ColorMode ColorMode // Default: "auto".
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with every default applied. SourceDir is
// the user's Downloads directory when the home directory can be resolved.
func DefaultConfig() Config {
	return Config{
		SourceDir:     DefaultSourceDir(),
		DryRun:        false,
		ByDate:        false,
		Monitor:       false,
		Interval:      60 * time.Second,
		Debounce:      2 * time.Second,
		LogEnabled:    true,
		LogFile:       DefaultLogFile,
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 30,
		ColorMode:     ColorAuto,
	}
}

// DefaultSourceDir returns ~/Downloads, or "Downloads" relative to the
// working directory when the home directory is unknown.
func DefaultSourceDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ExpandPath expands a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

// Destination returns the destination root, falling back to SourceDir.
func (c *Config) Destination() string {
	if c.DestRoot == "" {
		return c.SourceDir
	}
	return c.DestRoot
}

// Validate checks enum and range fields and normalizes paths in place.
// Whether the paths exist is left to the caller (see package check).
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.SourceDir == "" {
		return errors.New("source path must not be empty")
	}
	c.SourceDir = NormalizeDirArg(c.SourceDir)
	c.DestRoot = NormalizeDirArg(c.DestRoot)

	if c.Monitor && c.Interval <= 0 {
		return fmt.Errorf("monitor interval must be positive (got %s)", c.Interval)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative (got %s)", c.Debounce)
	}
	if c.LogEnabled && c.LogFile == "" {
		return errors.New("log file path must not be empty when logging is enabled")
	}

	for _, pattern := range c.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// Ignored reports whether a base name matches the ignore list or is the
// active log file. The log file is matched by base name only.
func (c *Config) Ignored(name string) bool {
	if c.LogEnabled && c.LogFile != "" && name == filepath.Base(c.LogFile) {
		return true
	}
	for _, pattern := range c.Ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
