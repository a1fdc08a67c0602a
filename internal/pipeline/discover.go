package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/dlsort/internal/planner"
)

// ErrSourceListing is returned when the source directory cannot be listed.
// It aborts the current cycle only.
var ErrSourceListing = errors.New("cannot list source directory")

// Scan lists the direct children of dir. Subdirectories are not entered.
// Symlinks are followed to decide whether an entry is a regular file; a
// dangling link is reported as non-regular. Entries come back sorted by
// name.
func Scan(dir string) ([]planner.FileEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrSourceListing, dir, err)
	}

	entries := make([]planner.FileEntry, 0, len(dirents))
	for _, d := range dirents {
		path := filepath.Join(dir, d.Name())
		e := planner.FileEntry{Name: d.Name(), Path: path}

		info, err := os.Stat(path)
		if err != nil {
			// Vanished since ReadDir, or a broken symlink.
			if linfo, lerr := d.Info(); lerr == nil {
				e.ModTime = linfo.ModTime()
			}
			entries = append(entries, e)
			continue
		}
		e.ModTime = info.ModTime()
		e.Size = info.Size()
		e.Regular = info.Mode().IsRegular()
		entries = append(entries, e)
	}
	return entries, nil
}
