package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

// MaxCollisionAttempts bounds the " (N)" suffix search.
const MaxCollisionAttempts = 10000

// ErrCollisionExhausted is returned when no free name was found within
// the attempt limit.
var ErrCollisionExhausted = errors.New("no free destination name")

// Resolver picks collision-free destination names. Every candidate is
// checked against the disk at call time; in addition, names handed out by
// this resolver are claimed so two moves in one plan never target the same
// free name. Use one Resolver per plan. All methods are goroutine-safe.
type Resolver struct {
	mu          sync.Mutex
	claimed     map[string]string // destination path → source path that owns it
	maxAttempts int
	lstat       func(string) (fs.FileInfo, error)
}

// NewResolver creates a ready-to-use resolver.
func NewResolver() *Resolver {
	return &Resolver{
		claimed:     make(map[string]string),
		maxAttempts: MaxCollisionAttempts,
		lstat:       os.Lstat,
	}
}

// Resolve returns name when it is free in dir, otherwise the first free
// "stem (N).ext" variant. A dir that does not exist makes every name free.
func (r *Resolver) Resolve(dir, name string) (string, error) {
	return r.ResolveFor("", dir, name)
}

// ResolveFor is [Resolver.Resolve] on behalf of source. A claim held by
// the same source does not count as a collision, so re-resolving one file
// is stable.
func (r *Resolver) ResolveFor(source, dir, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	free, err := r.available(source, dir, name)
	if err != nil {
		return "", err
	}
	if free {
		r.claimed[filepath.Join(dir, name)] = source
		return name, nil
	}

	stem, ext := SplitName(name)
	for n := 1; n <= r.maxAttempts; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		free, err := r.available(source, dir, candidate)
		if err != nil {
			return "", err
		}
		if free {
			r.claimed[filepath.Join(dir, candidate)] = source
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %q in %s after %d attempts", ErrCollisionExhausted, name, dir, r.maxAttempts)
}

// available reports whether name is unclaimed and absent from dir.
func (r *Resolver) available(source, dir, name string) (bool, error) {
	path := filepath.Join(dir, name)
	if owner, ok := r.claimed[path]; ok && (source == "" || owner != source) {
		return false, nil
	}
	_, err := r.lstat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		// Missing dir, or a path component is a file: the executor will
		// report the latter when it tries to create the directory.
		return true, nil
	default:
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
}
