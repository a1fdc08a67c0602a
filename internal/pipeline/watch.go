package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/backmassage/dlsort/internal/logging"
)

// Watch reports changes to the direct children of dir on the returned
// channel. Bursts of events (a download being written, a batch of files
// being dropped in) are coalesced: a signal is sent once no event has
// arrived for the debounce period. The channel holds at most one pending
// signal. The watcher is closed when ctx is cancelled.
func Watch(ctx context.Context, dir string, debounce time.Duration, log *logging.Logger) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	wake := make(chan struct{}, 1)
	go watchLoop(ctx, w, filepath.Clean(dir), debounce, wake, log)
	return wake, nil
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, dir string, debounce time.Duration, wake chan<- struct{}, log *logging.Logger) {
	defer w.Close() //nolint:errcheck

	// Starts stopped; reset on each relevant event.
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if filepath.Dir(ev.Name) != dir {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("Watcher error: %v", err)

		case <-timer.C:
			select {
			case wake <- struct{}{}:
			default:
			}
		}
	}
}
