package mover

import "github.com/backmassage/dlsort/internal/planner"

// Kind is the result class of one planned move.
type Kind int

const (
	Moved Kind = iota
	Skipped
	Failed
)

func (k Kind) String() string {
	switch k {
	case Moved:
		return "moved"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Skip reasons.
const (
	ReasonDryRun      = "dry-run"
	ReasonInterrupted = "interrupted"
)

// Outcome is the immutable result of executing one PlannedMove.
type Outcome struct {
	Move   planner.PlannedMove
	Kind   Kind
	Reason string // set for Skipped
	Err    error  // set for Failed

	// CrossDevice is true when the file was copied and the source removed
	// because a rename was not possible.
	CrossDevice bool
}

// AnyFailed reports whether any outcome is Failed.
func AnyFailed(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Kind == Failed {
			return true
		}
	}
	return false
}
