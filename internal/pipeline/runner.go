package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/dlsort/internal/config"
	"github.com/backmassage/dlsort/internal/logging"
	"github.com/backmassage/dlsort/internal/mover"
	"github.com/backmassage/dlsort/internal/naming"
	"github.com/backmassage/dlsort/internal/planner"
)

// Runner performs organize cycles for one configuration. It holds no state
// between cycles.
type Runner struct {
	Config *config.Config
	Rules  naming.Rules
	Log    *logging.Logger

	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

// NewRunner returns a Runner for cfg. The progress bar goes to stderr when
// cfg.Progress is set.
func NewRunner(cfg *config.Config, rules naming.Rules, log *logging.Logger) *Runner {
	r := &Runner{Config: cfg, Rules: rules, Log: log}
	if cfg.Progress {
		r.Progress = os.Stderr
	}
	return r
}

// RunCycle performs one organize cycle with a fresh Runner.
func RunCycle(ctx context.Context, cfg *config.Config, rules naming.Rules, log *logging.Logger) (RunStats, error) {
	return NewRunner(cfg, rules, log).RunCycle(ctx)
}

// RunCycle scans the source directory, plans, executes and reports. The
// returned error is non-nil only when the source cannot be listed (wrapping
// [ErrSourceListing]); per-file failures are counted in RunStats.Failed.
func (r *Runner) RunCycle(ctx context.Context) (RunStats, error) {
	cfg := r.Config
	stats := newRunStats(uuid.NewString(), cfg.DryRun)

	source, err := filepath.Abs(cfg.SourceDir)
	if err != nil {
		return stats, fmt.Errorf("%w %s: %w", ErrSourceListing, cfg.SourceDir, err)
	}
	dest, err := filepath.Abs(cfg.Destination())
	if err != nil {
		return stats, fmt.Errorf("resolving destination %s: %w", cfg.Destination(), err)
	}

	// --- Scan ---
	entries, err := Scan(source)
	if err != nil {
		return stats, err
	}
	stats.Scanned = len(entries)

	// --- Plan ---
	mode := planner.ByType
	if cfg.ByDate {
		mode = planner.ByDate
	}
	plan := planner.BuildPlan(entries, planner.Options{
		Root:   dest,
		Mode:   mode,
		Rules:  r.Rules,
		Ignore: cfg.Ignored,
	})
	stats.Planned = len(plan.Moves)

	rep := NewReporter(r.Log, r.Progress)
	rep.Start(&stats, source, dest, mode, len(plan.Moves))
	for _, ex := range plan.Excluded {
		stats.recordExclusion(ex)
		rep.Exclusion(ex)
	}

	// --- Execute ---
	mover.ExecuteWith(ctx, plan.Moves, mover.Options{
		DryRun: cfg.DryRun,
		OnOutcome: func(_ int, o mover.Outcome) {
			stats.recordOutcome(o)
			rep.Outcome(o)
		},
	})

	stats.Finished = time.Now()
	rep.Finish(&stats)
	return stats, nil
}
