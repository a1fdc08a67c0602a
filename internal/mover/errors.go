package mover

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/backmassage/dlsort/internal/naming"
)

// Sentinel errors wrapped into Failed outcomes.
var (
	ErrCreateDir         = errors.New("cannot create destination directory")
	ErrDestinationExists = errors.New("destination already exists")
	ErrMove              = errors.New("move failed")
)

// FailureKind is a coarse classification of a move failure for logs and
// summaries.
type FailureKind string

const (
	FailurePermission  FailureKind = "permission denied"
	FailureNotFound    FailureKind = "source missing"
	FailureExists      FailureKind = "destination exists"
	FailureNoSpace     FailureKind = "no space left"
	FailureNotDir      FailureKind = "path is not a directory"
	FailureCrossDevice FailureKind = "cross-device"
	FailureCollision   FailureKind = "no free name"
	FailureOther       FailureKind = "other"
)

// Classify maps err onto a FailureKind. Checked in order; the first match
// wins.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, naming.ErrCollisionExhausted):
		return FailureCollision
	case errors.Is(err, ErrDestinationExists), errors.Is(err, fs.ErrExist):
		return FailureExists
	case errors.Is(err, fs.ErrPermission):
		return FailurePermission
	case errors.Is(err, syscall.ENOSPC):
		return FailureNoSpace
	case errors.Is(err, syscall.ENOTDIR):
		return FailureNotDir
	case errors.Is(err, fs.ErrNotExist):
		return FailureNotFound
	case errors.Is(err, syscall.EXDEV):
		return FailureCrossDevice
	}
	return FailureOther
}
