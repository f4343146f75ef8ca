package line

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// built is a path together with the request generation it reflects.
type built struct {
	gen  uint64
	path Path
}

// Tracker keeps a built path current with the registry. Anchor updates and
// viewport changes schedule a rebuild that runs at most once per frame.
type Tracker struct {
	registry *Registry
	segments []Segment

	mu             sync.RWMutex
	viewportHeight float64
	onRebuild      func(Path)

	// requested counts changes; a built path is current when its gen
	// matches.
	requested atomic.Uint64
	latest    atomic.Pointer[built]
	throttle  *Throttle
	cancel    func()
}

// NewTracker subscribes to reg and builds an initial path.
func NewTracker(reg *Registry, segments []Segment, viewportHeight float64) *Tracker {
	t := &Tracker{
		registry:       reg,
		segments:       segments,
		viewportHeight: viewportHeight,
	}
	t.throttle = NewThrottle(t.rebuild)
	t.cancel = reg.Subscribe(func(Event) { t.request() })
	t.rebuild()
	return t
}

func (t *Tracker) request() {
	t.requested.Add(1)
	t.throttle.Request()
}

func (t *Tracker) rebuild() {
	start := time.Now()
	gen := t.requested.Load()
	t.mu.RLock()
	vh, hook := t.viewportHeight, t.onRebuild
	t.mu.RUnlock()

	p := Build(t.registry.Snapshot(), t.segments, vh)
	if !t.publish(gen, p) {
		Logger().Debug("line: dropped superseded rebuild", "gen", gen)
		return
	}
	Logger().Debug("line: path rebuilt",
		"gen", gen, "segments", len(p.Segments), "totalLength", p.TotalLength, "took", time.Since(start))
	if hook != nil {
		hook(p)
	}
}

// publish stores p unless a path from a later generation is already stored.
func (t *Tracker) publish(gen uint64, p Path) bool {
	next := &built{gen: gen, path: p}
	for {
		cur := t.latest.Load()
		if cur != nil && cur.gen > gen {
			return false
		}
		if t.latest.CompareAndSwap(cur, next) {
			return true
		}
	}
}

// OnRebuild sets a function called with every newly built path.
func (t *Tracker) OnRebuild(fn func(Path)) {
	t.mu.Lock()
	t.onRebuild = fn
	t.mu.Unlock()
}

// Path returns the most recently built path, which may predate changes
// still waiting for the next frame.
func (t *Tracker) Path() Path {
	return t.latest.Load().path
}

// Current returns a path reflecting every change made so far. When the
// stored build is behind, it builds from the current snapshot without
// storing the result.
func (t *Tracker) Current() Path {
	b := t.latest.Load()
	if b.gen >= t.requested.Load() {
		return b.path
	}
	return Build(t.registry.Snapshot(), t.segments, t.ViewportHeight())
}

// Segments returns the configuration the tracker builds from.
func (t *Tracker) Segments() []Segment {
	return t.segments
}

// ViewportHeight returns the height paths are currently scaled to.
func (t *Tracker) ViewportHeight() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.viewportHeight
}

// SetViewportHeight schedules a rebuild when the height changes.
func (t *Tracker) SetViewportHeight(vh float64) {
	if vh <= 0 {
		return
	}
	t.mu.Lock()
	changed := t.viewportHeight != vh
	t.viewportHeight = vh
	t.mu.Unlock()
	if changed {
		t.request()
	}
}

// Run rebuilds on frame boundaries until ctx is done.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	t.throttle.Run(ctx, interval)
}

// Flush runs a scheduled rebuild outside the frame loop.
func (t *Tracker) Flush() bool {
	return t.throttle.Tick()
}

// Rebuilds returns how many scheduled rebuilds have run.
func (t *Tracker) Rebuilds() int64 {
	return t.throttle.Runs()
}

// Close stops listening to the registry.
func (t *Tracker) Close() {
	t.cancel()
}
