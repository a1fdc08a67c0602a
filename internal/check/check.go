// Package check provides the --check diagnostics: it verifies that the
// source directory can be listed, that the destination can be written,
// and reports the active category table.
package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/dlsort/internal/config"
	"github.com/backmassage/dlsort/internal/naming"
)

// Sentinel errors returned by the individual checks.
var (
	ErrSourceMissing      = errors.New("source directory does not exist")
	ErrSourceNotDir       = errors.New("source path is not a directory")
	ErrSourceUnreadable   = errors.New("source directory cannot be listed")
	ErrDestNotWritable    = errors.New("destination directory is not writable")
	ErrDestParentMissing  = errors.New("destination parent directory does not exist")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs every diagnostic, logging each result, and returns the
// first failure. Warnings (shadowed extensions) do not fail the check.
func RunCheck(cfg *config.Config, rules naming.Rules, log Logger) error {
	log.Info("=== Configuration Check ===")

	var first error
	fail := func(err error) {
		log.Error("%v", err)
		if first == nil {
			first = err
		}
	}

	if n, err := CheckSource(cfg.SourceDir); err != nil {
		fail(err)
	} else {
		log.Success("Source: %s (%d entries)", cfg.SourceDir, n)
	}

	if created, err := CheckDestination(cfg.Destination()); err != nil {
		fail(err)
	} else if created {
		log.Success("Destination: %s (will be created)", cfg.Destination())
	} else {
		log.Success("Destination: %s (writable)", cfg.Destination())
	}

	if cfg.LogEnabled {
		log.Info("Log file: %s", cfg.LogFile)
	} else {
		log.Info("Log file: disabled")
	}
	if len(cfg.Ignore) > 0 {
		log.Info("Ignoring: %s", strings.Join(cfg.Ignore, ", "))
	}

	checkRules(rules, log)
	return first
}

// CheckSource verifies that dir is a listable directory and returns the
// number of entries in it.
func CheckSource(dir string) (int, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrSourceMissing, dir)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrSourceNotDir, dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return len(entries), nil
}

// CheckDestination verifies that files can be created under dir. When dir
// does not exist yet, its parent must exist; created reports that case.
func CheckDestination(dir string) (created bool, err error) {
	probeDir := dir
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		probeDir = filepath.Dir(dir)
		if _, err := os.Stat(probeDir); err != nil {
			return false, fmt.Errorf("%w: %s", ErrDestParentMissing, probeDir)
		}
		created = true
	}

	f, err := os.CreateTemp(probeDir, ".dlsort-check-*")
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrDestNotWritable, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return created, nil
}

// checkRules logs the category table and warns about extensions that a
// later category can never receive.
func checkRules(rules naming.Rules, log Logger) {
	cats := rules.Categories()
	log.Info("Categories: %d (fallback: %s)", len(cats), rules.Fallback())
	for _, c := range cats {
		switch {
		case len(c.Patterns) > 0:
			log.Info("  %-12s patterns: %s", c.Name, strings.Join(c.Patterns, ", "))
		case len(c.Extensions) > 0:
			log.Info("  %-12s %d extensions", c.Name, len(c.Extensions))
			log.Debug("    %s", strings.Join(c.Extensions, " "))
		default:
			log.Info("  %-12s (fallback only)", c.Name)
		}
	}

	shadowed := rules.Shadowed()
	exts := make([]string, 0, len(shadowed))
	for ext := range shadowed {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		owner, _ := rules.CategoryForExt(ext)
		log.Warn("Extension %s goes to %s; also listed in %s", ext, owner, strings.Join(shadowed[ext], ", "))
	}
	if len(exts) == 0 {
		log.Success("Category table OK")
	}
}
