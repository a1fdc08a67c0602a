package mover

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// moveFile renames src to dst, falling back to copy+delete when the two
// paths are on different filesystems. It reports whether the fallback ran.
func moveFile(src, dst string) (crossDevice bool, err error) {
	err = os.Rename(src, dst)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return false, err
	}
	if copyErr := copyAndRemove(src, dst); copyErr != nil {
		return true, fmt.Errorf("copy fallback: %w (rename error: %w)", copyErr, err)
	}
	return true, nil
}

// copyAndRemove copies src to a newly created dst (never overwriting),
// fsyncs it, carries over the mode and modification time, and removes src.
// A partial dst is removed on failure.
func copyAndRemove(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	// Date mode relies on the modification time surviving the move.
	if err = os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return err
	}
	return os.Remove(src)
}
