package mover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/backmassage/dlsort/internal/planner"
)

// Options configures [ExecuteWith].
type Options struct {
	DryRun bool

	// OnOutcome, when set, is called after each move with its index in the
	// input and its outcome.
	OnOutcome func(i int, o Outcome)
}

// Execute applies moves in order and returns one outcome per move, in the
// same order. In dry-run mode every outcome is Skipped("dry-run") and the
// filesystem is not touched.
func Execute(ctx context.Context, moves []planner.PlannedMove, dryRun bool) []Outcome {
	return ExecuteWith(ctx, moves, Options{DryRun: dryRun})
}

// ExecuteWith is [Execute] with a per-outcome callback. Cancellation is
// checked between moves; moves not yet started are Skipped("interrupted").
func ExecuteWith(ctx context.Context, moves []planner.PlannedMove, opts Options) []Outcome {
	outcomes := make([]Outcome, len(moves))
	for i, m := range moves {
		var o Outcome
		switch {
		case opts.DryRun:
			o = Outcome{Move: m, Kind: Skipped, Reason: ReasonDryRun}
		case ctx.Err() != nil:
			o = Outcome{Move: m, Kind: Skipped, Reason: ReasonInterrupted}
		default:
			o = executeOne(m)
		}
		outcomes[i] = o
		if opts.OnOutcome != nil {
			opts.OnOutcome(i, o)
		}
	}
	return outcomes
}

// executeOne runs a single move: planning error → mkdir → no-clobber check
// → rename (or copy fallback).
func executeOne(m planner.PlannedMove) Outcome {
	if m.Err != nil {
		return Outcome{Move: m, Kind: Failed, Err: m.Err}
	}

	if err := os.MkdirAll(m.DestDir, 0o755); err != nil {
		return Outcome{Move: m, Kind: Failed, Err: fmt.Errorf("%w %s: %w", ErrCreateDir, m.DestDir, err)}
	}

	// The name was free at plan time; another writer may have taken it.
	dest := m.Dest()
	if _, err := os.Lstat(dest); err == nil {
		return Outcome{Move: m, Kind: Failed, Err: fmt.Errorf("%w: %s", ErrDestinationExists, dest)}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Outcome{Move: m, Kind: Failed, Err: fmt.Errorf("%w: %w", ErrMove, err)}
	}

	crossDevice, err := moveFile(m.Source, dest)
	if err != nil {
		return Outcome{Move: m, Kind: Failed, Err: fmt.Errorf("%w: %w", ErrMove, err), CrossDevice: crossDevice}
	}
	return Outcome{Move: m, Kind: Moved, CrossDevice: crossDevice}
}
