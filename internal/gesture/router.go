// Package gesture turns pointer input into drag-and-drop moves. It knows
// where zones are drawn on screen but nothing about the rules; every drop is
// handed to a Dispatcher, which decides whether the move is legal.
package gesture

import (
	"math"
	"sync"
	"time"

	"github.com/peterkuimelis/decksim/internal/game"
)

// PointerKind distinguishes input that can scroll from input that cannot.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

func (k PointerKind) String() string {
	if k == PointerTouch {
		return "touch"
	}
	return "mouse"
}

// State is the router's position in the gesture lifecycle.
type State int

const (
	StateIdle State = iota
	StatePending
	StateDragging
	StateScrolling
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDragging:
		return "dragging"
	case StateScrolling:
		return "scrolling"
	default:
		return "idle"
	}
}

type Point struct {
	X, Y float64
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// DropZone is a screen area that accepts drops for a zone (and bench slot).
type DropZone struct {
	Zone   game.Zone
	Slot   int
	Bounds Rect
}

// Dispatcher receives finished drops. Up calls it on the caller's goroutine
// without holding the router lock; net.SeatDispatcher serialises it against
// the rest of a table.
type Dispatcher interface {
	Apply(cmd game.Command) bool
}

type Config struct {
	DragDelay       time.Duration // touch hold before a drag starts
	ScrollThreshold float64       // pixels of movement that turn a pending touch into a scroll
	LongDrag        time.Duration // gestures at least this long insert below the stack
}

func DefaultConfig() Config {
	return Config{
		DragDelay:       200 * time.Millisecond,
		ScrollThreshold: 10,
		LongDrag:        500 * time.Millisecond,
	}
}

// Result describes what Up did.
type Result struct {
	Command    game.Command
	Dispatched bool // a drop zone was hit and the command was sent
	Applied    bool // the dispatcher accepted it
}

// Router tracks one gesture at a time. All methods are safe to call from
// any goroutine; the drag timer fires on its own.
type Router struct {
	cfg      Config
	clock    Clock
	dispatch Dispatcher

	mu     sync.Mutex
	zones  []DropZone
	state  State
	kind   PointerKind
	source game.Zone
	index  int
	origin Point
	pos    Point
	downAt time.Time
	dragAt time.Time
	timer  Timer
	gen    uint64 // bumped per gesture so a stale timer is ignored
}

// NewRouter builds a router. A nil clock uses the real one.
func NewRouter(cfg Config, clock Clock, d Dispatcher) *Router {
	if clock == nil {
		clock = RealClock{}
	}
	return &Router{cfg: cfg, clock: clock, dispatch: d}
}

// SetDropZones replaces the hit-test list. Later entries are drawn on top.
func (r *Router) SetDropZones(zones []DropZone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones = append([]DropZone(nil), zones...)
}

func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Position returns where the dragged card currently is.
func (r *Router) Position() Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

// Down starts a gesture on the card at index in source. Any gesture already
// in progress is abandoned.
func (r *Router) Down(kind PointerKind, source game.Zone, index int, p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()

	r.kind, r.source, r.index = kind, source, index
	r.origin, r.pos = p, p
	r.downAt = r.clock.Now()

	if kind == PointerMouse {
		r.state = StateDragging
		r.dragAt = r.downAt
		return
	}
	r.state = StatePending
	gen := r.gen
	r.timer = r.clock.AfterFunc(r.cfg.DragDelay, func() { r.fire(gen) })
}

func (r *Router) fire(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.state != StatePending {
		return
	}
	r.timer = nil
	r.state = StateDragging
	r.dragAt = r.clock.Now()
}

// Move tracks the pointer. A pending touch that travels past the threshold
// becomes a scroll and will not drag.
func (r *Router) Move(p Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.state {
	case StatePending:
		if math.Hypot(p.X-r.origin.X, p.Y-r.origin.Y) > r.cfg.ScrollThreshold {
			r.stopTimerLocked()
			r.state = StateScrolling
		}
	case StateDragging:
		r.pos = p
	}
}

// Up ends the gesture. Only a drag released over a drop zone dispatches.
func (r *Router) Up(p Point) Result {
	r.mu.Lock()
	if r.state != StateDragging {
		r.resetLocked()
		r.mu.Unlock()
		return Result{}
	}
	elapsed := r.clock.Now().Sub(r.downAt)
	zone, hit := r.hitLocked(p)
	cmd := game.Command{
		Source:      r.source,
		SourceIndex: r.index,
		Target:      zone.Zone,
		TargetSlot:  zone.Slot,
		InsertBelow: elapsed >= r.cfg.LongDrag,
	}
	r.resetLocked()
	d := r.dispatch
	r.mu.Unlock()

	if !hit || d == nil {
		return Result{}
	}
	return Result{Command: cmd, Dispatched: true, Applied: d.Apply(cmd)}
}

// Cancel abandons the gesture without dispatching.
func (r *Router) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

func (r *Router) hitLocked(p Point) (DropZone, bool) {
	for i := len(r.zones) - 1; i >= 0; i-- {
		if r.zones[i].Bounds.Contains(p) {
			return r.zones[i], true
		}
	}
	return DropZone{}, false
}

func (r *Router) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Router) resetLocked() {
	r.stopTimerLocked()
	r.gen++
	r.state = StateIdle
}
