// Command dlsort organizes a downloads directory into category folders.
// It loads configuration from flags, the environment and an optional
// config file, then runs a single organize pass, a monitor loop, or the
// --check diagnostics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "dlsort: %v\n", err)
		os.Exit(1)
	}
}
