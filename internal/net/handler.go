package net

import (
	"fmt"

	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/log"
)

// Handle applies one client message to the table and returns the new state
// with the events it produced. Illegal moves are not errors: they come back
// with Applied false and an ignored event.
func Handle(t *game.Table, msg ClientMessage) ServerMessage {
	var resp ServerMessage
	t.Do(func(t *game.Table) {
		before := log.LastSeq(t.Logger().Events())
		applied, err := dispatch(t, msg)
		if err != nil {
			resp = ErrorMessage(err)
			return
		}
		resp = ServerMessage{
			Type:    "state",
			Applied: applied,
			State:   BuildStateView(t),
		}
		if events := log.Since(t.Logger().Events(), before); len(events) > 0 {
			resp.Events = EventViews(events)
		}
	})
	return resp
}

// ErrorMessage wraps err for the client.
func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: "error", Error: err.Error()}
}

func dispatch(t *game.Table, msg ClientMessage) (bool, error) {
	s := t.Seat(msg.Seat)
	if s == nil {
		return false, fmt.Errorf("no player in seat %d", msg.Seat)
	}

	switch msg.Type {
	case MsgState:
		return true, nil
	case MsgMove:
		if msg.Command == nil {
			return false, fmt.Errorf("move without command")
		}
		return s.Apply(*msg.Command), nil
	case MsgDraw:
		n := msg.N
		if n == 0 {
			n = 1
		}
		return s.Draw(n), nil
	case MsgShuffle:
		return s.ShuffleLibrary(), nil
	case MsgMulligan:
		return s.Mulligan(), nil
	case MsgEffect:
		kind, err := game.ParseEffectKind(msg.Effect)
		if err != nil {
			return false, err
		}
		return s.ApplyEffect(kind), nil
	case MsgSupporter:
		return s.PlaySupporter(msg.Index), nil
	case MsgDamage:
		zone, err := game.ParseZone(msg.Zone)
		if err != nil {
			return false, err
		}
		delta := msg.Delta
		if delta == 0 {
			delta = game.DamageClear
		}
		return s.AdjustDamage(zone, msg.Slot, delta), nil
	case MsgBenchCapacity:
		return s.IncreaseBenchCapacity(), nil
	case MsgTakePrize:
		return s.TakePrizeCard(msg.Index), nil
	case MsgTrashStadium:
		return s.TrashStadium(), nil
	case MsgReset:
		if err := t.ResetSeat(msg.Seat); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, fmt.Errorf("unknown message type %q", msg.Type)
}
