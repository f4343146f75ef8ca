package line

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultFrameInterval is one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Throttle coalesces recompute requests so fn runs at most once per frame.
type Throttle struct {
	fn      func()
	pending atomic.Bool
	runs    atomic.Int64
}

// NewThrottle returns a throttle that calls fn on the frame after a request.
func NewThrottle(fn func()) *Throttle {
	return &Throttle{fn: fn}
}

// Request marks an update as scheduled. Requests made before the next Tick
// collapse into one call.
func (t *Throttle) Request() {
	t.pending.Store(true)
}

// Pending reports whether an update is scheduled.
func (t *Throttle) Pending() bool {
	return t.pending.Load()
}

// Runs returns how many times fn has been called.
func (t *Throttle) Runs() int64 {
	return t.runs.Load()
}

// Tick runs fn if an update is scheduled. It reports whether fn ran.
func (t *Throttle) Tick() bool {
	if !t.pending.CompareAndSwap(true, false) {
		return false
	}
	t.fn()
	t.runs.Add(1)
	return true
}

// Run calls Tick every interval until ctx is done.
func (t *Throttle) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}
