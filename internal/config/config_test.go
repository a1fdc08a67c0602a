package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/home/u/Downloads", "/home/u/Downloads"},
		{"single trailing slash", "/home/u/Downloads/", "/home/u/Downloads"},
		{"multiple trailing slashes", "/home/u/Downloads///", "/home/u/Downloads"},
		{"root path", "/", "/"},
		{"relative path", "inbox", "inbox"},
		{"relative with slash", "inbox/", "inbox"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.ByDate)
	assert.False(t, cfg.Monitor)
	assert.True(t, cfg.LogEnabled)
	assert.Equal(t, 60*time.Second, cfg.Interval)
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.Equal(t, "Downloads", filepath.Base(cfg.SourceDir))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty source", func(c *Config) { c.SourceDir = "" }, true},
		{"bad color mode", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"monitor with zero interval", func(c *Config) { c.Monitor = true; c.Interval = 0 }, true},
		{"zero interval without monitor", func(c *Config) { c.Interval = 0 }, false},
		{"negative debounce", func(c *Config) { c.Debounce = -time.Second }, true},
		{"logging without file", func(c *Config) { c.LogFile = "" }, true},
		{"no logging without file", func(c *Config) { c.LogEnabled = false; c.LogFile = "" }, false},
		{"bad ignore glob", func(c *Config) { c.Ignore = []string{"[a-"} }, true},
		{"good ignore glob", func(c *Config) { c.Ignore = []string{"*.part"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NormalizesPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SourceDir = "/data/in/"
	cfg.DestRoot = "/data/out//"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/data/in", cfg.SourceDir)
	assert.Equal(t, "/data/out", cfg.DestRoot)
}

func TestDestination_FallsBackToSource(t *testing.T) {
	cfg := Config{SourceDir: "/in"}
	assert.Equal(t, "/in", cfg.Destination())
	cfg.DestRoot = "/out"
	assert.Equal(t, "/out", cfg.Destination())
}

func TestIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFile = "/var/log/" + DefaultLogFile
	cfg.Ignore = []string{"*.crdownload", "keep-*"}

	assert.True(t, cfg.Ignored(DefaultLogFile))
	assert.True(t, cfg.Ignored("movie.mkv.crdownload"))
	assert.True(t, cfg.Ignored("keep-me.txt"))
	assert.False(t, cfg.Ignored("report.pdf"))

	cfg.LogEnabled = false
	assert.False(t, cfg.Ignored(DefaultLogFile))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("DLSORT_TEST_DIR", "/tmp/x")

	assert.Equal(t, filepath.Join(home, "Downloads"), ExpandPath("~/Downloads"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/x/sub", ExpandPath("$DLSORT_TEST_DIR/sub"))
	assert.Equal(t, "", ExpandPath(""))
}

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	v := NewViper()
	fs := pflag.NewFlagSet("dlsort", pflag.ContinueOnError)
	require.NoError(t, DefineFlags(fs, v))
	require.NoError(t, fs.Parse(args))
	require.NoError(t, ApplyFlagOverrides(fs, v, fs.Args()))
	cfg, err := Load(v)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := parse(t)
	assert.Equal(t, DefaultSourceDir(), cfg.SourceDir)
	assert.Equal(t, 60*time.Second, cfg.Interval)
	assert.Equal(t, 2*time.Second, cfg.Debounce)
	assert.True(t, cfg.LogEnabled)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
}

func TestLoad_Flags(t *testing.T) {
	cfg := parse(t, "-d", "-b", "-m", "-i", "5", "--no-log", "--no-color",
		"--ignore", "*.part", "--ignore", "*.tmp", "/data/inbox")

	assert.Equal(t, "/data/inbox", cfg.SourceDir)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.ByDate)
	assert.True(t, cfg.Monitor)
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.False(t, cfg.LogEnabled)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, []string{"*.part", "*.tmp"}, cfg.Ignore)
}

func TestLoad_PathFlag(t *testing.T) {
	cfg := parse(t, "--path", "/data/x", "--dest", "/data/y")
	assert.Equal(t, "/data/x", cfg.SourceDir)
	assert.Equal(t, "/data/y", cfg.DestRoot)
}

func TestApplyFlagOverrides_RejectsPathTwice(t *testing.T) {
	v := NewViper()
	fs := pflag.NewFlagSet("dlsort", pflag.ContinueOnError)
	require.NoError(t, DefineFlags(fs, v))
	require.NoError(t, fs.Parse([]string{"--path", "/a", "/b"}))
	assert.Error(t, ApplyFlagOverrides(fs, v, fs.Args()))
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DLSORT_DRY_RUN", "true")
	t.Setenv("DLSORT_INTERVAL", "15")
	t.Setenv("DLSORT_LOG_ENABLED", "false")

	cfg := parse(t)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.False(t, cfg.LogEnabled)
}

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `source: /srv/inbox
by_date: true
interval: 30
ignore:
  - "*.part"
log:
  enabled: false
  file: /tmp/dlsort.log
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := NewViper()
	require.NoError(t, ReadConfigFile(v, path))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/inbox", cfg.SourceDir)
	assert.True(t, cfg.ByDate)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, []string{"*.part"}, cfg.Ignore)
	assert.False(t, cfg.LogEnabled)
	assert.Equal(t, "/tmp/dlsort.log", cfg.LogFile)
}

func TestReadConfigFile_MissingExplicitFile(t *testing.T) {
	v := NewViper()
	err := ReadConfigFile(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
