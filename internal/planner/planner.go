package planner

import (
	"path/filepath"
	"sort"

	"github.com/backmassage/dlsort/internal/naming"
)

// Options configures a planning pass.
type Options struct {
	Root   string // destination root
	Mode   Mode
	Rules  naming.Rules
	Ignore func(name string) bool // optional
}

// Plan is the short form of [BuildPlan] that returns only the moves.
func Plan(entries []FileEntry, root string, mode Mode, rules naming.Rules) []PlannedMove {
	return BuildPlan(entries, Options{Root: root, Mode: mode, Rules: rules}).Moves
}

// BuildPlan produces one PlannedMove per movable entry, ordered by source
// name.
//
// Flow per entry:
//  1. Skip anything that is not a regular file
//  2. Skip ignored names (log file, user globs)
//  3. Derive the destination directory from category or date
//  4. Skip files already sitting in that directory
//  5. Reserve a collision-free name in the destination directory
func BuildPlan(entries []FileEntry, opts Options) Result {
	sorted := make([]FileEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Path < sorted[j].Path
	})

	var res Result
	resolver := naming.NewResolver()

	for _, e := range sorted {
		// --- 1. Regular files only ---
		if !e.Regular {
			res.Excluded = append(res.Excluded, Exclusion{Entry: e, Reason: ReasonNotRegular})
			continue
		}

		// --- 2. Ignore list ---
		if opts.Ignore != nil && opts.Ignore(e.Name) {
			res.Excluded = append(res.Excluded, Exclusion{Entry: e, Reason: ReasonIgnored})
			continue
		}

		// --- 3. Destination directory ---
		category, destDir := destination(e, opts)

		// --- 4. In-place no-op ---
		if filepath.Clean(filepath.Dir(e.Path)) == filepath.Clean(destDir) {
			res.Excluded = append(res.Excluded, Exclusion{Entry: e, Reason: ReasonInPlace})
			continue
		}

		// --- 5. Collision-free name ---
		move := PlannedMove{
			Source:   e.Path,
			Name:     e.Name,
			Category: category,
			DestDir:  destDir,
			Size:     e.Size,
		}
		name, err := resolver.ResolveFor(e.Path, destDir, e.Name)
		if err != nil {
			move.Err = err
		} else {
			move.DestName = name
		}
		res.Moves = append(res.Moves, move)
	}
	return res
}

// destination returns the report label and directory for e.
func destination(e FileEntry, opts Options) (label, dir string) {
	if opts.Mode == ByDate {
		dir = naming.DateDir(opts.Root, e.ModTime)
		rel, err := filepath.Rel(opts.Root, dir)
		if err != nil {
			rel = dir
		}
		return filepath.ToSlash(rel), dir
	}
	category := naming.Classify(opts.Rules, e.Name)
	return category, naming.CategoryDir(opts.Root, category)
}
