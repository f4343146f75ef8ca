package line

import (
	"fmt"
	"math"
	"slices"
	"sync"
)

// Anchor is a named point registered by a page element. X is relative to the
// viewport, Y to the document. Both are whole pixels.
type Anchor struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// EventKind says what happened to an anchor.
type EventKind int

const (
	EventRegistered EventKind = iota
	EventRemoved
)

func (k EventKind) String() string {
	if k == EventRemoved {
		return "removed"
	}
	return "registered"
}

// Event is delivered to subscribers after the registry changes.
type Event struct {
	Kind   EventKind
	Anchor Anchor
}

// Registry maps anchor ids to their latest coordinates. Each id is expected
// to have a single writer, so last write wins.
type Registry struct {
	mu      sync.RWMutex
	anchors map[string]Anchor

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		anchors: make(map[string]Anchor),
		subs:    make(map[int]func(Event)),
	}
}

// roundPixel rounds half up, so 200.5 becomes 201 and -2.5 becomes -2.
func roundPixel(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Register stores the rounded coordinates for id, replacing any previous
// entry, and notifies subscribers. Coordinates from outside the process
// should pass CheckCoordinate first.
func (r *Registry) Register(id string, x, y float64) Anchor {
	a := Anchor{ID: id, X: roundPixel(x), Y: roundPixel(y)}

	r.mu.Lock()
	r.anchors[id] = a
	r.mu.Unlock()

	r.notify(Event{Kind: EventRegistered, Anchor: a})
	return a
}

// Measure registers the coordinates derived from a page element measurement.
func (r *Registry) Measure(m Measurement) (Anchor, error) {
	if err := m.Validate(); err != nil {
		Logger().Warn("line: measurement rejected", "id", m.ID, "err", err)
		return Anchor{}, err
	}
	return r.Register(m.ID, m.X(), m.Y()), nil
}

// Unregister removes id and notifies subscribers. It returns an error
// wrapping ErrUnknownAnchor when id was never registered.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	a, ok := r.anchors[id]
	delete(r.anchors, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnchor, id)
	}
	r.notify(Event{Kind: EventRemoved, Anchor: a})
	return nil
}

// Get returns the anchor stored for id.
func (r *Registry) Get(id string) (Anchor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.anchors[id]
	return a, ok
}

// Snapshot returns a copy of the current mapping.
func (r *Registry) Snapshot() map[string]Anchor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Anchor, len(r.anchors))
	for id, a := range r.anchors {
		out[id] = a
	}
	return out
}

// Len returns the number of registered anchors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.anchors)
}

// Subscribe adds fn to the observers notified after every change. The
// returned function removes it again.
func (r *Registry) Subscribe(fn func(Event)) (cancel func()) {
	r.subMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			r.subMu.Unlock()
		})
	}
}

// notify runs subscribers synchronously, in subscription order, outside the
// anchor lock so they may read the registry.
func (r *Registry) notify(ev Event) {
	r.subMu.Lock()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	fns := make([]func(Event), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, r.subs[id])
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
