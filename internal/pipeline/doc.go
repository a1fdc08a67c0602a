// Package pipeline runs organize cycles: scan the source directory, build a
// plan, execute it, and report the outcomes. Monitor repeats cycles on an
// interval, optionally woken early by filesystem events (see Watch).
//
// Files: discover.go (Scan), stats.go (RunStats), report.go (Reporter),
// runner.go (RunCycle), monitor.go (Monitor), watch.go (Watch).
package pipeline
