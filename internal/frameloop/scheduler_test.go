package frameloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every reading.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) read() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func TestSchedulerElapsedFromFirstFrame(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0), step: 16 * time.Millisecond}
	s := NewSchedulerWithClock(clock.read)

	var frames []Frame
	s.SetAnimationLoop(func(f Frame) { frames = append(frames, f) })
	for i := 0; i < 3; i++ {
		s.Frame()
	}

	require.Len(t, frames, 3)
	assert.Equal(t, time.Duration(0), frames[0].Elapsed)
	assert.Equal(t, 32*time.Millisecond, frames[2].Elapsed)
	for _, f := range frames {
		assert.True(t, f.HasTime)
	}
	assert.Equal(t, uint64(3), s.Frames())
}

func TestSchedulerClearHandler(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.SetAnimationLoop(func(Frame) { calls++ })
	s.Frame()
	s.SetAnimationLoop(nil)
	s.Frame()
	assert.Equal(t, 1, calls)
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.SetAnimationLoop(func(Frame) { calls++ })
	s.Frame()

	s.Stop()
	s.Stop()
	assert.True(t, s.Stopped())
	s.Frame()
	assert.Equal(t, 1, calls)

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}

func TestSchedulerRunUntilStopped(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.SetAnimationLoop(func(Frame) {
		calls++
		if calls == 5 {
			s.Stop()
		}
	})

	err := s.Run(context.Background(), time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 5, calls)
}

func TestSchedulerRunCancelled(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())
	s.SetAnimationLoop(func(Frame) { cancel() })

	err := s.Run(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, s.Stopped())
}
