// Package frame owns the repeating tick that drives the simulation. The
// scheduler publishes ticks on a channel and drops the ones a busy consumer
// misses; Stop (or context cancellation) ends the stream and closes the
// channel, so teardown is explicit and nothing fires against a dead view.
package frame

import (
	"context"
	"time"
)

// DefaultFPS is the tick rate used when the host doesn't configure one.
const DefaultFPS = 30

// Tick is one frame signal.
type Tick struct {
	Seq uint64
	At  time.Time
}

// Scheduler emits Ticks at a fixed rate between Start and Stop.
type Scheduler struct {
	interval time.Duration
	cancel   context.CancelFunc
	ch       chan Tick
}

// New returns a scheduler emitting fps ticks per second.
func New(fps int) *Scheduler {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Scheduler{interval: time.Second / time.Duration(fps)}
}

// Start begins ticking until ctx is cancelled or Stop is called. The
// returned channel closes when the scheduler exits. Sends never block: a
// consumer that misses a tick simply gets the next one.
func (s *Scheduler) Start(ctx context.Context) <-chan Tick {
	ctx, s.cancel = context.WithCancel(ctx)
	s.ch = make(chan Tick, 1)

	go func() {
		defer close(s.ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		var seq uint64
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				seq++
				select {
				case s.ch <- Tick{Seq: seq, At: now}:
				default:
				}
			}
		}
	}()
	return s.ch
}

// Stop cancels the tick stream. Safe to call repeatedly, or before Start.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
