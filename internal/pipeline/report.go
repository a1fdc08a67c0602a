package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/dlsort/internal/display"
	"github.com/backmassage/dlsort/internal/logging"
	"github.com/backmassage/dlsort/internal/mover"
	"github.com/backmassage/dlsort/internal/planner"
)

// Reporter logs one line per outcome and a summary per cycle. When a
// progress writer is set, a progress bar tracks execution alongside the
// log lines.
type Reporter struct {
	log      *logging.Logger
	progress io.Writer
	bar      *progressbar.ProgressBar
}

// NewReporter returns a Reporter writing to log. progress may be nil.
func NewReporter(log *logging.Logger, progress io.Writer) *Reporter {
	return &Reporter{log: log, progress: progress}
}

// Start logs the cycle header and prepares the progress bar for total moves.
func (r *Reporter) Start(stats *RunStats, source, dest string, mode planner.Mode, total int) {
	r.log.Info("Starting organization of: %s (run %s)", source, stats.RunID)
	if dest != source {
		r.log.Info("Destination: %s", dest)
	}
	r.log.Debug("Mode: by %s, %d entries scanned, %d planned", mode, stats.Scanned, total)
	if stats.DryRun {
		r.log.Warn("DRY RUN MODE - No files will be moved")
	}

	if r.progress == nil || total == 0 {
		return
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Organizing"),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(r.progress)
		}),
	)
}

// Exclusion logs an entry the planner left out.
func (r *Reporter) Exclusion(ex planner.Exclusion) {
	if ex.Reason == planner.ReasonNotRegular {
		return
	}
	r.log.Debug("Skip (%s): %s", ex.Reason, ex.Entry.Name)
}

// Outcome logs a single executed or simulated move.
func (r *Reporter) Outcome(o mover.Outcome) {
	m := o.Move
	target := m.Category + "/"
	if m.Renamed() {
		target += m.DestName
	}

	switch o.Kind {
	case mover.Moved:
		if o.CrossDevice {
			r.log.Success("Moved: %s -> %s (copied across filesystems)", m.Name, target)
		} else {
			r.log.Success("Moved: %s -> %s", m.Name, target)
		}
	case mover.Skipped:
		if o.Reason == mover.ReasonDryRun {
			r.log.Info("[DRY RUN] Would move: %s -> %s", m.Name, target)
		} else {
			r.log.Warn("Skipped (%s): %s", o.Reason, m.Name)
		}
	case mover.Failed:
		r.log.Error("Error moving %s: %v (%s)", m.Name, o.Err, mover.Classify(o.Err))
	}

	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

// Finish logs the cycle summary.
func (r *Reporter) Finish(stats *RunStats) {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}

	r.log.Info("Organization complete! (run %s, %s)", stats.RunID, stats.Elapsed().Round(time.Millisecond))
	if stats.DryRun {
		r.log.Info("Files that would move: %d (%s)", stats.WouldMove, display.FormatBytes(stats.Bytes))
	} else {
		r.log.Info("Files moved: %d (%s)", stats.Moved, display.FormatBytes(stats.Bytes))
	}
	r.log.Info("Files skipped: %d", stats.Skipped)
	if stats.Failed > 0 {
		r.log.Warn("Errors: %d", stats.Failed)
	} else {
		r.log.Info("Errors: 0")
	}

	if len(stats.ByCategory) == 0 {
		return
	}
	if stats.DryRun {
		r.log.Info("Files by category (dry run):")
	} else {
		r.log.Info("Files moved by category:")
	}
	for _, cat := range stats.Categories() {
		r.log.Info("  %s: %d", cat, stats.ByCategory[cat])
	}
}
