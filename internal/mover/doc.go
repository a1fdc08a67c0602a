// Package mover applies planned moves to the filesystem.
//
// Each move is an independent unit of work: the destination directory is
// created on demand, an existing destination is never overwritten, and a
// failure is recorded for that file only before moving on. Nothing is
// rolled back. In dry-run mode no filesystem call is made at all.
//
// Files: outcome.go (result types), errors.go (sentinels and failure
// classification), executor.go (the loop), move.go (rename with a
// copy fallback for cross-device moves).
package mover
