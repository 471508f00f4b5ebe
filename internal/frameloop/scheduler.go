package frameloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Handler is the per frame callback registered with SetAnimationLoop.
type Handler func(Frame)

// Scheduler calls the animation handler once per frame until it is stopped.
// The host calls Frame once per display refresh, or uses Run to drive it
// from a ticker.
type Scheduler struct {
	handler Handler
	clock   func() time.Time
	start   time.Time
	started bool
	frames  uint64

	stopped  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		clock: time.Now,
		done:  make(chan struct{}),
	}
}

// NewSchedulerWithClock is NewScheduler with a custom time source.
func NewSchedulerWithClock(clock func() time.Time) *Scheduler {
	s := NewScheduler()
	s.clock = clock
	return s
}

// SetAnimationLoop registers the handler called every frame. nil removes it.
func (s *Scheduler) SetAnimationLoop(h Handler) {
	s.handler = h
}

// Frame runs the handler with the time elapsed since the first frame.
func (s *Scheduler) Frame() {
	if s.stopped.Load() {
		return
	}
	now := s.clock()
	if !s.started {
		s.start = now
		s.started = true
	}
	s.frames++
	if s.handler != nil {
		s.handler(Frame{Elapsed: now.Sub(s.start), HasTime: true})
	}
}

// Frames returns the number of frames run so far.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Stop cancels the loop. It is safe to call from any goroutine and more than
// once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.stopped.Store(true)
		close(s.done)
	})
}

func (s *Scheduler) Stopped() bool {
	return s.stopped.Load()
}

// Done is closed when the scheduler stops.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Run calls Frame at the given interval until ctx is cancelled or Stop is
// called. It returns the context's error, or nil after Stop.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.C:
			s.Frame()
		}
	}
}
