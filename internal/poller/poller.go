// Package poller drives the fixed-interval poll loop across all
// stations. Per-station failures are isolated: an error is journaled
// and the loop proceeds to the next station; the scheduler itself only
// stops on cancellation.
package poller

import (
	"context"
	"time"

	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/journal"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/source"
	"github.com/agentjill/eqms-ntpc-korba-scrape/internal/station"
)

// defaultSlice is the sleep granularity between cycles. Cancellation is
// observed within one slice instead of blocking for the whole interval.
const defaultSlice = 500 * time.Millisecond

// Scheduler runs one poll cycle per interval over a fixed station order.
type Scheduler struct {
	source   source.Source
	stations []*station.Station
	interval time.Duration
	slice    time.Duration
	journal  *journal.Journal
	dataDir  string
}

// New creates a scheduler. Stations are polled in the given order every
// cycle; there is no concurrency between stations because the source's
// session is shared.
func New(src source.Source, stations []*station.Station, interval time.Duration, jrnl *journal.Journal, dataDir string) *Scheduler {
	return &Scheduler{
		source:   src,
		stations: stations,
		interval: interval,
		slice:    defaultSlice,
		journal:  jrnl,
		dataDir:  dataDir,
	}
}

// SetSlice overrides the sleep slice granularity. Used in tests.
func (s *Scheduler) SetSlice(d time.Duration) {
	if d > 0 {
		s.slice = d
	}
}

// Run polls until ctx is cancelled, then drains: the current cycle's
// log entries are finished, shutdown banners are written, and Run
// returns nil. Cancellation is checked before each cycle and between
// sleep slices, never mid-station.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.journal.File().Empty() {
		s.journal.Separator()
	}
	s.journal.Info("Application Started.")
	s.journal.Separator()

	for ctx.Err() == nil {
		start := time.Now()
		s.RunCycle(ctx)
		s.sleepRemainder(ctx, time.Since(start))
	}

	s.journal.Info("Received cancellation, Preparing to exit...")
	s.journal.Separator()
	s.journal.Info("Application Ended")
	s.journal.Separator()
	return nil
}

// RunCycle polls every station once, in fixed order, and closes the
// cycle with a separator line. A station failure aborts only that
// station: the error is journaled with the station name and the cycle
// moves on, leaving the station's output file untouched.
func (s *Scheduler) RunCycle(ctx context.Context) {
	for _, st := range s.stations {
		if err := st.Poll(ctx, s.source); err != nil {
			s.journal.Error("Error fetching data for %s: %v", st.Name(), err)
			continue
		}

		s.journal.Info("%s", st)
		if err := st.WriteOutput(s.dataDir); err != nil {
			s.journal.Error("Error writing output for %s: %v", st.Name(), err)
		}
	}
	s.journal.Separator()
}

// sleepRemainder sleeps out the rest of the interval after a cycle,
// compensating for the cycle's own elapsed time, in bounded slices so a
// pending cancellation is observed promptly.
func (s *Scheduler) sleepRemainder(ctx context.Context, elapsed time.Duration) {
	remaining := s.interval - elapsed
	for remaining > 0 {
		d := s.slice
		if remaining < d {
			d = remaining
		}

		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		remaining -= d
	}
}
