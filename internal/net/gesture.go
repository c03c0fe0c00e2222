package net

import (
	"fmt"
	"sync"

	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/gesture"
	"github.com/peterkuimelis/decksim/internal/log"
)

// SeatDispatcher applies routed drops to one seat of a table. Each Apply
// takes the table lock, so a router may call it from any goroutine.
type SeatDispatcher struct {
	Table *game.Table
	Seat  int
}

func (d SeatDispatcher) Apply(cmd game.Command) bool {
	applied := false
	d.Table.Do(func(t *game.Table) {
		if s := t.Seat(d.Seat); s != nil {
			applied = s.Apply(cmd)
		}
	})
	return applied
}

// Gestures turns one client's pointer messages into moves on a table, with
// a router per seat. Other message types pass through to Handle.
type Gestures struct {
	table *game.Table
	cfg   gesture.Config
	clock gesture.Clock

	mu      sync.Mutex
	routers map[int]*gesture.Router
}

// NewGestures builds the pointer host for one connection. A nil clock uses
// the real one.
func NewGestures(t *game.Table, cfg gesture.Config, clock gesture.Clock) *Gestures {
	return &Gestures{table: t, cfg: cfg, clock: clock, routers: make(map[int]*gesture.Router)}
}

func (g *Gestures) router(seat int) (*gesture.Router, error) {
	occupied := false
	g.table.Do(func(t *game.Table) { occupied = t.Seat(seat) != nil })
	if !occupied {
		return nil, fmt.Errorf("no player in seat %d", seat)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.routers[seat]
	if !ok {
		r = gesture.NewRouter(g.cfg, g.clock, SeatDispatcher{Table: g.table, Seat: seat})
		g.routers[seat] = r
	}
	return r, nil
}

// Handle routes pointer and drop zone messages and hands everything else to
// Handle. A released drag over a drop zone answers with the new state; other
// pointer messages answer with the gesture state.
func (g *Gestures) Handle(msg ClientMessage) ServerMessage {
	switch msg.Type {
	case MsgDropZones, MsgPointer:
	default:
		return Handle(g.table, msg)
	}
	r, err := g.router(msg.Seat)
	if err != nil {
		return ErrorMessage(err)
	}

	if msg.Type == MsgDropZones {
		zones, err := dropZones(msg.DropZones)
		if err != nil {
			return ErrorMessage(err)
		}
		r.SetDropZones(zones)
		return gestureMessage(r)
	}

	p := msg.Pointer
	if p == nil {
		return ErrorMessage(fmt.Errorf("pointer message without pointer"))
	}
	at := gesture.Point{X: p.X, Y: p.Y}
	switch p.Phase {
	case PointerDown:
		kind, err := pointerKind(p.Kind)
		if err != nil {
			return ErrorMessage(err)
		}
		source, err := game.ParseZone(p.Source)
		if err != nil {
			return ErrorMessage(err)
		}
		r.Down(kind, source, p.Index, at)
	case PointerMove:
		r.Move(at)
	case PointerCancel:
		r.Cancel()
	case PointerUp:
		return g.release(r, at)
	default:
		return ErrorMessage(fmt.Errorf("unknown pointer phase %q", p.Phase))
	}
	return gestureMessage(r)
}

func (g *Gestures) release(r *gesture.Router, at gesture.Point) ServerMessage {
	var before int
	g.table.Do(func(t *game.Table) { before = log.LastSeq(t.Logger().Events()) })

	res := r.Up(at)
	if !res.Dispatched {
		return gestureMessage(r)
	}

	resp := ServerMessage{Type: "state", Applied: res.Applied}
	g.table.Do(func(t *game.Table) {
		resp.State = BuildStateView(t)
		if events := log.Since(t.Logger().Events(), before); len(events) > 0 {
			resp.Events = EventViews(events)
		}
	})
	return resp
}

// Close abandons any gesture still in progress.
func (g *Gestures) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.routers {
		r.Cancel()
	}
}

func gestureMessage(r *gesture.Router) ServerMessage {
	return ServerMessage{Type: "gesture", Gesture: r.State().String()}
}

func pointerKind(s string) (gesture.PointerKind, error) {
	switch s {
	case "", "mouse":
		return gesture.PointerMouse, nil
	case "touch":
		return gesture.PointerTouch, nil
	}
	return 0, fmt.Errorf("unknown pointer kind %q", s)
}

func dropZones(in []DropZoneInput) ([]gesture.DropZone, error) {
	out := make([]gesture.DropZone, 0, len(in))
	for i, z := range in {
		zone, err := game.ParseZone(z.Zone)
		if err != nil {
			return nil, fmt.Errorf("dropZones[%d]: %w", i, err)
		}
		out = append(out, gesture.DropZone{
			Zone:   zone,
			Slot:   z.Slot,
			Bounds: gesture.Rect{X: z.X, Y: z.Y, W: z.W, H: z.H},
		})
	}
	return out, nil
}
