package pipeline

import (
	"sort"
	"time"

	"github.com/backmassage/dlsort/internal/mover"
	"github.com/backmassage/dlsort/internal/planner"
)

// RunStats tracks counters for one organize cycle.
type RunStats struct {
	RunID  string
	DryRun bool

	Scanned int // directory entries seen
	Planned int // moves in the plan
	Moved     int
	WouldMove int // dry-run moves
	Skipped   int // interrupted moves, ignored and in-place files
	Failed    int

	// ByCategory counts moved files per category (or date folder). In a
	// dry run it counts the files that would have moved.
	ByCategory map[string]int
	Bytes      int64 // total size of moved files

	Started  time.Time
	Finished time.Time
}

func newRunStats(runID string, dryRun bool) RunStats {
	return RunStats{
		RunID:      runID,
		DryRun:     dryRun,
		ByCategory: make(map[string]int),
		Started:    time.Now(),
	}
}

// recordExclusion counts an entry the planner left out. Non-regular
// entries (directories, category folders) are not files and are not
// counted.
func (s *RunStats) recordExclusion(ex planner.Exclusion) {
	if ex.Reason == planner.ReasonNotRegular {
		return
	}
	s.Skipped++
}

// recordOutcome counts one executed or simulated move.
func (s *RunStats) recordOutcome(o mover.Outcome) {
	switch o.Kind {
	case mover.Moved:
		s.Moved++
		s.ByCategory[o.Move.Category]++
		s.Bytes += o.Move.Size
	case mover.Skipped:
		if o.Reason == mover.ReasonDryRun {
			s.WouldMove++
			s.ByCategory[o.Move.Category]++
			s.Bytes += o.Move.Size
			return
		}
		s.Skipped++
	case mover.Failed:
		s.Failed++
	}
}

// Categories returns the ByCategory keys in sorted order.
func (s *RunStats) Categories() []string {
	keys := make([]string, 0, len(s.ByCategory))
	for k := range s.ByCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Elapsed returns the cycle duration, or zero while it is still running.
func (s *RunStats) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}
