package pipeline

import (
	"context"
	"time"

	"github.com/backmassage/dlsort/internal/logging"
)

// Monitor runs organize cycles until its context is cancelled.
type Monitor struct {
	Interval time.Duration
	Cycle    func(ctx context.Context) error
	Log      *logging.Logger

	// After defaults to time.After. Tests replace it to drive the loop
	// without sleeping.
	After func(time.Duration) <-chan time.Time

	// Wake, when non-nil, starts the next cycle before the interval
	// elapses (see Watch).
	Wake <-chan struct{}
}

// Run blocks, running a cycle immediately and then once per interval or
// wake-up, until ctx is cancelled. A failing cycle is logged and the loop
// continues. It returns the number of cycles run.
func (m *Monitor) Run(ctx context.Context) int {
	after := m.After
	if after == nil {
		after = time.After
	}

	m.Log.Info("Starting continuous monitoring (interval: %s)", m.Interval)
	m.Log.Info("Press Ctrl+C to stop")

	cycles := 0
	for ctx.Err() == nil {
		cycles++
		if err := m.Cycle(ctx); err != nil {
			m.Log.Error("Cycle %d failed: %v", cycles, err)
		}
		if ctx.Err() != nil {
			break
		}

		m.Log.Info("Waiting %d seconds until next scan...", int(m.Interval/time.Second))
		select {
		case <-ctx.Done():
		case <-after(m.Interval):
		case <-m.Wake:
			m.Log.Debug("Change detected, scanning early")
		}
	}

	m.Log.Info("Monitoring stopped after %d cycle(s)", cycles)
	return cycles
}
