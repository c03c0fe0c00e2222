package net

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/gesture"
)

type manualTimer struct {
	at      time.Time
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) gesture.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.at.After(c.now) {
			t.stopped = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

// boardMessage lays out the active spot at the top left and bench slot 2 beside it.
func boardMessage(seat int) ClientMessage {
	return ClientMessage{Type: MsgDropZones, Seat: seat, DropZones: []DropZoneInput{
		{Zone: "Battlefield", X: 0, Y: 0, W: 100, H: 100},
		{Zone: "Bench", Slot: 1, X: 200, Y: 0, W: 50, H: 50},
	}}
}

func pointer(phase string, x, y float64) ClientMessage {
	return ClientMessage{Type: MsgPointer, Pointer: &PointerInput{Phase: phase, X: x, Y: y}}
}

func pickUp(kind string, source game.Zone, index int, x, y float64) ClientMessage {
	return ClientMessage{Type: MsgPointer, Pointer: &PointerInput{
		Phase: PointerDown, Kind: kind, Source: source.String(), Index: index, X: x, Y: y,
	}}
}

func TestGesturesMouseDrop(t *testing.T) {
	tbl := newTable(t)
	g := NewGestures(tbl, gesture.DefaultConfig(), newManualClock())
	defer g.Close()

	resp := g.Handle(boardMessage(game.SeatSelf))
	require.Equal(t, "gesture", resp.Type)
	assert.Equal(t, "idle", resp.Gesture)

	resp = g.Handle(pickUp("mouse", game.ZoneHand, 0, 500, 500))
	assert.Equal(t, "dragging", resp.Gesture)
	assert.Equal(t, "dragging", g.Handle(pointer(PointerMove, 50, 50)).Gesture)

	resp = g.Handle(pointer(PointerUp, 50, 50))
	require.Equal(t, "state", resp.Type)
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.State.Seats[0].Battlefield)
	assert.Equal(t, "Pikachu", resp.State.Seats[0].Battlefield.Top)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "PlayBattlefield", resp.Events[0].Type)

	// Released outside every zone: nothing is dispatched.
	g.Handle(pickUp("", game.ZoneHand, 0, 500, 500))
	resp = g.Handle(pointer(PointerUp, 900, 900))
	assert.Equal(t, "gesture", resp.Type)
	assert.Equal(t, "idle", resp.Gesture)
	assert.Len(t, tbl.Seat(game.SeatSelf).Snapshot().Hand, 6)
}

func TestGesturesTouchHoldInsertsBelow(t *testing.T) {
	tbl := newTable(t)
	clock := newManualClock()
	g := NewGestures(tbl, gesture.DefaultConfig(), clock)
	defer g.Close()
	g.Handle(boardMessage(game.SeatSelf))
	g.Handle(pickUp("mouse", game.ZoneHand, 0, 500, 500))
	g.Handle(pointer(PointerUp, 10, 10)) // Pikachu to the active spot

	resp := g.Handle(pickUp("touch", game.ZoneHand, 0, 500, 500))
	assert.Equal(t, "pending", resp.Gesture)
	clock.Advance(200 * time.Millisecond)
	assert.Equal(t, "dragging", g.Handle(pointer(PointerMove, 40, 40)).Gesture)
	clock.Advance(400 * time.Millisecond)

	resp = g.Handle(pointer(PointerUp, 40, 40))
	require.Equal(t, "state", resp.Type)
	require.True(t, resp.Applied)
	bf := resp.State.Seats[0].Battlefield
	require.Len(t, bf.Cards, 2)
	assert.Equal(t, "Lightning Energy", bf.Cards[0].Name, "a long drag tucks the energy under")
	assert.Equal(t, "Pikachu", bf.Top)
}

func TestGesturesTouchScrollDoesNotDrop(t *testing.T) {
	tbl := newTable(t)
	clock := newManualClock()
	g := NewGestures(tbl, gesture.DefaultConfig(), clock)
	defer g.Close()
	g.Handle(boardMessage(game.SeatSelf))

	g.Handle(pickUp("touch", game.ZoneHand, 0, 50, 50))
	assert.Equal(t, "scrolling", g.Handle(pointer(PointerMove, 50, 90)).Gesture)
	clock.Advance(time.Second)
	resp := g.Handle(pointer(PointerUp, 50, 50))
	assert.Equal(t, "gesture", resp.Type)
	assert.Nil(t, tbl.Seat(game.SeatSelf).Snapshot().Battlefield)
}

func TestGesturesSeatsHaveSeparateRouters(t *testing.T) {
	tbl := newTable(t)
	g := NewGestures(tbl, gesture.DefaultConfig(), newManualClock())
	defer g.Close()
	g.Handle(boardMessage(game.SeatOpponent))

	down := pickUp("mouse", game.ZoneHand, 0, 500, 500)
	down.Seat = game.SeatOpponent
	g.Handle(down)
	up := pointer(PointerUp, 220, 20)
	up.Seat = game.SeatOpponent
	resp := g.Handle(up)
	require.True(t, resp.Applied)
	assert.NotNil(t, resp.State.Seats[1].Bench[1])
	assert.Nil(t, resp.State.Seats[0].Bench[1])
}

func TestGesturesErrorsAndPassthrough(t *testing.T) {
	tbl := newTable(t)
	g := NewGestures(tbl, gesture.DefaultConfig(), newManualClock())
	defer g.Close()

	for _, msg := range []ClientMessage{
		{Type: MsgPointer},
		pointer("wiggle", 0, 0),
		{Type: MsgPointer, Pointer: &PointerInput{Phase: PointerDown, Kind: "pen", Source: "Hand"}},
		{Type: MsgPointer, Pointer: &PointerInput{Phase: PointerDown, Source: "Deck"}},
		{Type: MsgDropZones, DropZones: []DropZoneInput{{Zone: "Graveyard"}}},
		{Type: MsgDropZones, Seat: 4},
	} {
		resp := g.Handle(msg)
		assert.Equal(t, "error", resp.Type, "%+v", msg)
	}

	resp := g.Handle(ClientMessage{Type: MsgDraw, N: 2})
	require.Equal(t, "state", resp.Type)
	assert.Len(t, resp.State.Seats[0].Hand, 9)
}

func TestSeatDispatcherSerialisesWithHandle(t *testing.T) {
	tbl := newTable(t)
	d := SeatDispatcher{Table: tbl, Seat: game.SeatSelf}
	assert.False(t, SeatDispatcher{Table: tbl, Seat: 7}.Apply(game.Command{Source: game.ZoneHand, Target: game.ZoneTrash}))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				d.Apply(game.Command{Source: game.ZoneHand, SourceIndex: 0, Target: game.ZoneTrash})
				d.Apply(game.Command{Source: game.ZoneTrash, SourceIndex: 0, Target: game.ZoneHand})
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				Handle(tbl, ClientMessage{Type: MsgDraw})
				Handle(tbl, ClientMessage{Type: MsgShuffle})
			}
		}()
	}
	wg.Wait()

	resp := Handle(tbl, ClientMessage{Type: MsgState})
	assert.Equal(t, game.DeckSizeRequired, resp.State.Seats[0].Total)
}
