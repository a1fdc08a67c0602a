package planner

import (
	"path/filepath"
	"time"
)

// Mode selects how destination directories are derived.
type Mode int

const (
	ByType Mode = iota // <root>/<Category>
	ByDate             // <root>/<Year>/<MonthName>
)

func (m Mode) String() string {
	if m == ByDate {
		return "date"
	}
	return "type"
}

// FileEntry is one directory entry under the source root, read fresh on
// every scan.
type FileEntry struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
	Regular bool // false for directories, symlinks to directories, devices, etc.
}

// PlannedMove moves Source to DestDir/DestName. DestName was unique in
// DestDir when the plan was built; a concurrent writer can still take it
// before the move runs.
type PlannedMove struct {
	Source   string
	Name     string // original base name
	Category string // category name, or "<Year>/<Month>" in date mode
	DestDir  string
	DestName string
	Size     int64

	// Err is set when no destination could be planned (for example the
	// collision search was exhausted). Such a move is never attempted.
	Err error
}

// Dest returns the full destination path.
func (m PlannedMove) Dest() string {
	return filepath.Join(m.DestDir, m.DestName)
}

// Renamed reports whether the destination name differs from the source
// name because of a collision.
func (m PlannedMove) Renamed() bool {
	return m.DestName != "" && m.DestName != m.Name
}

// Exclusion records an entry that was left out of the plan.
type Exclusion struct {
	Entry  FileEntry
	Reason string
}

// Exclusion reasons.
const (
	ReasonNotRegular = "not a regular file"
	ReasonIgnored    = "ignored"
	ReasonInPlace    = "already organized"
)

// Result is the full output of [BuildPlan].
type Result struct {
	Moves    []PlannedMove
	Excluded []Exclusion
}
