package config

// This file binds CLI flags, the optional config file, and DLSORT_*
// environment variables into a single viper instance, then builds a Config
// from it. Precedence is flag > env > file > default.
// Negated flags (--no-log, --no-color) are applied after parsing so that
// config-file values hold unless the user passes the flag.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Viper keys. Nested keys map to sections of the YAML config file.
const (
	KeySource        = "source"
	KeyDestination   = "destination"
	KeyRulesFile     = "rules_file"
	KeyDryRun        = "dry_run"
	KeyByDate        = "by_date"
	KeyIgnore        = "ignore"
	KeyMonitor       = "monitor"
	KeyInterval      = "interval"
	KeyWatch         = "watch"
	KeyDebounce      = "watch_debounce"
	KeyLogEnabled    = "log.enabled"
	KeyLogFile       = "log.file"
	KeyLogMaxSize    = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
	KeyLogMaxAge     = "log.max_age_days"
	KeyVerbose       = "verbose"
	KeyProgress      = "progress"
	KeyColor         = "color"
	KeyCheck         = "check"
)

// EnvPrefix is the prefix for environment overrides, e.g. DLSORT_DRY_RUN.
const EnvPrefix = "DLSORT"

// NewViper returns a viper instance with defaults from [DefaultConfig] and
// environment lookup enabled.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault(KeySource, d.SourceDir)
	v.SetDefault(KeyDestination, "")
	v.SetDefault(KeyRulesFile, "")
	v.SetDefault(KeyDryRun, d.DryRun)
	v.SetDefault(KeyByDate, d.ByDate)
	v.SetDefault(KeyIgnore, []string{})
	v.SetDefault(KeyMonitor, d.Monitor)
	v.SetDefault(KeyInterval, int(d.Interval/time.Second))
	v.SetDefault(KeyWatch, d.Watch)
	v.SetDefault(KeyDebounce, d.Debounce.String())
	v.SetDefault(KeyLogEnabled, d.LogEnabled)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyLogMaxSize, d.LogMaxSizeMB)
	v.SetDefault(KeyLogMaxBackups, d.LogMaxBackups)
	v.SetDefault(KeyLogMaxAge, d.LogMaxAgeDays)
	v.SetDefault(KeyVerbose, d.Verbose)
	v.SetDefault(KeyProgress, d.Progress)
	v.SetDefault(KeyColor, string(d.ColorMode))
	v.SetDefault(KeyCheck, d.CheckOnly)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefineFlags registers all organizer flags on fs and binds the ones that
// map directly onto viper keys.
func DefineFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	d := DefaultConfig()

	fs.StringP("path", "p", "", "Directory to organize (default: ~/Downloads)")
	fs.String("dest", "", "Destination root for category folders (default: the organized directory)")
	fs.String("rules", "", "YAML file overriding the category table")
	fs.BoolP("dry-run", "d", false, "Preview changes without moving files")
	fs.BoolP("by-date", "b", false, "Organize by modification date (Year/Month) instead of type")
	fs.StringSlice("ignore", nil, "Glob of file names to leave in place (repeatable)")
	fs.BoolP("monitor", "m", false, "Re-scan continuously at a fixed interval")
	fs.IntP("interval", "i", int(d.Interval/time.Second), "Monitoring interval in seconds")
	fs.Bool("watch", false, "In monitor mode, also re-scan shortly after filesystem changes")
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.Bool("progress", false, "Show a progress bar while moving files")
	fs.BoolP("check", "c", false, "Check paths and category rules, then exit")
	fs.StringP("log", "l", d.LogFile, "Log file path")

	// Negated flags, applied in ApplyFlagOverrides.
	fs.Bool("no-log", false, "Disable the log file (console output only)")
	fs.Bool("color", false, "Force colored logs")
	fs.Bool("no-color", false, "Disable colored logs")

	bindings := map[string]string{
		KeySource:      "path",
		KeyDestination: "dest",
		KeyRulesFile:   "rules",
		KeyDryRun:      "dry-run",
		KeyByDate:      "by-date",
		KeyIgnore:      "ignore",
		KeyMonitor:     "monitor",
		KeyInterval:    "interval",
		KeyWatch:       "watch",
		KeyVerbose:     "verbose",
		KeyProgress:    "progress",
		KeyCheck:       "check",
		KeyLogFile:     "log",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// ApplyFlagOverrides copies negated flags and the positional path argument
// into v after parsing. An empty --path flag must not shadow the default,
// so it is only honored when set.
func ApplyFlagOverrides(fs *pflag.FlagSet, v *viper.Viper, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("expected at most one path argument, got %d", len(args))
	}
	if len(args) == 1 {
		if fs.Changed("path") {
			return errors.New("give the directory either as --path or as an argument, not both")
		}
		v.Set(KeySource, args[0])
	} else if !fs.Changed("path") && v.GetString(KeySource) == "" {
		v.Set(KeySource, DefaultSourceDir())
	}

	if changed(fs, "no-log") {
		v.Set(KeyLogEnabled, false)
	}
	if changed(fs, "no-color") {
		v.Set(KeyColor, string(ColorNever))
	} else if changed(fs, "color") {
		v.Set(KeyColor, string(ColorAlways))
	}
	return nil
}

// changed reports whether a boolean flag was passed and is true.
func changed(fs *pflag.FlagSet, name string) bool {
	if !fs.Changed(name) {
		return false
	}
	on, err := fs.GetBool(name)
	return err == nil && on
}

// ReadConfigFile loads path into v, or the default search locations when
// path is empty. A missing default file is not an error.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(ExpandPath(path))
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "dlsort"))
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load builds a Config from v. It does not validate; call
// [Config.Validate] afterwards.
func Load(v *viper.Viper) (Config, error) {
	debounce, err := time.ParseDuration(v.GetString(KeyDebounce))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyDebounce, err)
	}

	cfg := Config{
		SourceDir:     ExpandPath(v.GetString(KeySource)),
		DestRoot:      ExpandPath(v.GetString(KeyDestination)),
		RulesFile:     ExpandPath(v.GetString(KeyRulesFile)),
		DryRun:        v.GetBool(KeyDryRun),
		ByDate:        v.GetBool(KeyByDate),
		Ignore:        v.GetStringSlice(KeyIgnore),
		Monitor:       v.GetBool(KeyMonitor),
		Interval:      time.Duration(v.GetInt(KeyInterval)) * time.Second,
		Watch:         v.GetBool(KeyWatch),
		Debounce:      debounce,
		LogEnabled:    v.GetBool(KeyLogEnabled),
		LogFile:       ExpandPath(v.GetString(KeyLogFile)),
		LogMaxSizeMB:  v.GetInt(KeyLogMaxSize),
		LogMaxBackups: v.GetInt(KeyLogMaxBackups),
		LogMaxAgeDays: v.GetInt(KeyLogMaxAge),
		Verbose:       v.GetBool(KeyVerbose),
		Progress:      v.GetBool(KeyProgress),
		ColorMode:     ColorMode(strings.ToLower(v.GetString(KeyColor))),
		CheckOnly:     v.GetBool(KeyCheck),
	}
	return cfg, nil
}
