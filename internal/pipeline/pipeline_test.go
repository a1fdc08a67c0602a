package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/dlsort/internal/config"
	"github.com/backmassage/dlsort/internal/logging"
	"github.com/backmassage/dlsort/internal/naming"
)

// --- Helpers ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
}

func testConfig(root string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.SourceDir = root
	cfg.LogEnabled = false
	return &cfg
}

func run(t *testing.T, cfg *config.Config) (RunStats, string) {
	t.Helper()
	var buf bytes.Buffer
	stats, err := RunCycle(context.Background(), cfg, naming.DefaultRules(), logging.NewWriterLogger(&buf, true))
	require.NoError(t, err)
	return stats, buf.String()
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	return names
}

// --- Scan ---

func TestScan_ListsDirectChildren(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.txt")
	touch(t, dir, "a.pdf")
	touch(t, filepath.Join(dir, "Documents"), "nested.pdf")

	entries, err := Scan(dir)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "Documents", entries[0].Name)
	assert.False(t, entries[0].Regular)
	assert.Equal(t, "a.pdf", entries[1].Name)
	assert.True(t, entries[1].Regular)
	assert.Equal(t, int64(len("a.pdf")), entries[1].Size)
	assert.Equal(t, filepath.Join(dir, "b.txt"), entries[2].Path)
}

func TestScan_Symlinks(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "real.txt")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.txt"), filepath.Join(dir, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling.txt")))

	entries, err := Scan(dir)
	require.NoError(t, err)

	regular := map[string]bool{}
	for _, e := range entries {
		regular[e.Name] = e.Regular
	}
	assert.True(t, regular["link.txt"])
	assert.False(t, regular["dangling.txt"])
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, ErrSourceListing)
}

// --- RunCycle ---

func TestRunCycle_ByType(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "report.pdf")
	touch(t, root, "Photo.JPG")
	touch(t, root, "Screenshot 2024-01-01.png")
	touch(t, root, "README")

	stats, out := run(t, testConfig(root))

	assert.Equal(t, 4, stats.Moved)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, map[string]int{"Documents": 1, "Images": 1, "Screenshots": 1, "Others": 1}, stats.ByCategory)
	assert.FileExists(t, filepath.Join(root, "Documents", "report.pdf"))
	assert.FileExists(t, filepath.Join(root, "Images", "Photo.JPG"))
	assert.FileExists(t, filepath.Join(root, "Screenshots", "Screenshot 2024-01-01.png"))
	assert.FileExists(t, filepath.Join(root, "Others", "README"))
	assert.Contains(t, out, "Moved: report.pdf -> Documents/")
	assert.Contains(t, out, "Files moved: 4")
	assert.NotEmpty(t, stats.RunID)
}

func TestRunCycle_Idempotent(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.pdf")
	touch(t, root, "b.zip")

	first, _ := run(t, testConfig(root))
	require.Equal(t, 2, first.Moved)

	second, _ := run(t, testConfig(root))
	assert.Equal(t, 0, second.Planned)
	assert.Equal(t, 0, second.Moved)
	assert.ElementsMatch(t, []string{"Archives", "Documents"}, listDir(t, root))
}

func TestRunCycle_DuplicateNames(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Documents"), "a.pdf")
	touch(t, root, "a.pdf")

	stats, out := run(t, testConfig(root))

	assert.Equal(t, 1, stats.Moved)
	assert.ElementsMatch(t, []string{"a.pdf", "a (1).pdf"}, listDir(t, filepath.Join(root, "Documents")))
	assert.Contains(t, out, "-> Documents/a (1).pdf")
}

func TestRunCycle_DryRunLeavesTreeUntouched(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.pdf")
	touch(t, root, "song.mp3")
	cfg := testConfig(root)
	cfg.DryRun = true

	stats, out := run(t, cfg)

	assert.Equal(t, 0, stats.Moved)
	assert.Equal(t, 2, stats.WouldMove)
	assert.Equal(t, []string{"a.pdf", "song.mp3"}, listDir(t, root))
	assert.Contains(t, out, "[DRY RUN] Would move: a.pdf -> Documents/")
}

func TestRunCycle_SkipsLogFileAndIgnored(t *testing.T) {
	root := t.TempDir()
	touch(t, root, config.DefaultLogFile)
	touch(t, root, "big.iso.part")
	touch(t, root, "a.pdf")
	cfg := testConfig(root)
	cfg.LogEnabled = true
	cfg.LogFile = filepath.Join(root, config.DefaultLogFile)
	cfg.Ignore = []string{"*.part"}

	stats, _ := run(t, cfg)

	assert.Equal(t, 1, stats.Moved)
	assert.Equal(t, 2, stats.Skipped)
	assert.FileExists(t, filepath.Join(root, config.DefaultLogFile))
	assert.FileExists(t, filepath.Join(root, "big.iso.part"))
}

func TestRunCycle_ByDate(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "old.txt")
	mtime := time.Date(2023, time.November, 5, 12, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(filepath.Join(root, "old.txt"), mtime, mtime))
	cfg := testConfig(root)
	cfg.ByDate = true

	stats, _ := run(t, cfg)

	assert.Equal(t, 1, stats.Moved)
	assert.FileExists(t, filepath.Join(root, "2023", "November", "old.txt"))
	assert.Equal(t, map[string]int{"2023/November": 1}, stats.ByCategory)
}

func TestRunCycle_SeparateDestination(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	touch(t, src, "a.pdf")
	cfg := testConfig(src)
	cfg.DestRoot = dest

	stats, _ := run(t, cfg)

	assert.Equal(t, 1, stats.Moved)
	assert.FileExists(t, filepath.Join(dest, "Documents", "a.pdf"))
	assert.Empty(t, listDir(t, src))
}

func TestRunCycle_PartialFailureContinues(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.pdf")
	touch(t, root, "b.png")
	touch(t, root, "c.mp3")
	// A file where the Images folder should go.
	require.NoError(t, os.WriteFile(filepath.Join(root, "Images"), nil, 0o644))
	cfg := testConfig(root)
	cfg.Ignore = []string{"Images"}

	stats, out := run(t, cfg)

	assert.Equal(t, 2, stats.Moved)
	assert.Equal(t, 1, stats.Failed)
	assert.FileExists(t, filepath.Join(root, "b.png"))
	assert.FileExists(t, filepath.Join(root, "Music", "c.mp3"))
	assert.Contains(t, out, "Error moving b.png")
}

func TestRunCycle_MissingSource(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "gone"))
	_, err := RunCycle(context.Background(), cfg, naming.DefaultRules(), logging.NewWriterLogger(&bytes.Buffer{}, false))
	assert.ErrorIs(t, err, ErrSourceListing)
}

// --- Monitor ---

// immediate is an After replacement that fires at once.
func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func TestMonitor_RunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	calls := 0
	m := &Monitor{
		Interval: time.Minute,
		Log:      logging.NewWriterLogger(&buf, false),
		After:    immediate,
		Cycle: func(context.Context) error {
			calls++
			if calls == 3 {
				cancel()
			}
			return nil
		},
	}

	assert.Equal(t, 3, m.Run(ctx))
	assert.Equal(t, 3, calls)
	assert.Contains(t, buf.String(), "Waiting 60 seconds until next scan...")
	assert.Contains(t, buf.String(), "Monitoring stopped")
}

func TestMonitor_FailingCycleDoesNotStopLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var buf bytes.Buffer
	calls := 0
	m := &Monitor{
		Interval: time.Second,
		Log:      logging.NewWriterLogger(&buf, false),
		After:    immediate,
		Cycle: func(context.Context) error {
			calls++
			switch calls {
			case 1:
				return ErrSourceListing
			case 2:
				return errors.New("transient")
			default:
				cancel()
				return nil
			}
		},
	}

	assert.Equal(t, 3, m.Run(ctx))
	assert.Contains(t, buf.String(), "Cycle 1 failed")
	assert.Contains(t, buf.String(), "Cycle 2 failed")
}

func TestMonitor_WakeStartsCycleEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wake := make(chan struct{}, 1)
	never := func(time.Duration) <-chan time.Time { return nil }
	calls := 0
	m := &Monitor{
		Interval: time.Hour,
		Log:      logging.NewWriterLogger(&bytes.Buffer{}, false),
		After:    never,
		Wake:     wake,
		Cycle: func(context.Context) error {
			calls++
			if calls == 2 {
				cancel()
				return nil
			}
			wake <- struct{}{}
			return nil
		},
	}

	assert.Equal(t, 2, m.Run(ctx))
}

func TestMonitor_RealCycles(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "a.pdf")
	cfg := testConfig(root)
	log := logging.NewWriterLogger(&bytes.Buffer{}, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var moved []int
	m := &Monitor{
		Interval: time.Second,
		Log:      log,
		After:    immediate,
		Cycle: func(ctx context.Context) error {
			stats, err := RunCycle(ctx, cfg, naming.DefaultRules(), log)
			moved = append(moved, stats.Moved)
			if len(moved) == 1 {
				touch(t, root, "b.mp3")
			}
			if len(moved) == 3 {
				cancel()
			}
			return err
		},
	}

	m.Run(ctx)
	assert.Equal(t, []int{1, 1, 0}, moved)
}

// --- Watch ---

func TestWatch_SignalsAfterDebounce(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wake, err := Watch(ctx, dir, 50*time.Millisecond, logging.NewWriterLogger(&bytes.Buffer{}, false))
	require.NoError(t, err)

	touch(t, dir, "new.pdf")

	select {
	case <-wake:
	case <-time.After(5 * time.Second):
		t.Fatal("no wake-up after creating a file")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope"), time.Second, logging.NewWriterLogger(&bytes.Buffer{}, false))
	assert.Error(t, err)
}
