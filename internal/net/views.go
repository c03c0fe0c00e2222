package net

import (
	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/log"
)

// BuildStateView renders every occupied seat of the table.
func BuildStateView(t *game.Table) *StateView {
	sv := &StateView{}
	for seat := game.SeatSelf; seat <= game.SeatOpponent; seat++ {
		if s := t.Seat(seat); s != nil {
			sv.Seats = append(sv.Seats, BuildSeatView(s))
		}
	}
	if c := t.Stadium().Current(); c != nil {
		cv := CardInstanceView(c)
		sv.Stadium = &cv
	}
	return sv
}

// BuildSeatView renders one session's zones.
func BuildSeatView(s *game.Session) SeatView {
	z := s.Snapshot()
	v := SeatView{
		Seat:          s.Owner(),
		Hand:          cardViews(z.Hand),
		LibraryCount:  len(z.Library),
		PrizeCount:    len(z.Prizes),
		Trash:         cardViews(z.Trash),
		Battlefield:   StackViewOf(z.Battlefield),
		BenchCount:    z.BenchCount(),
		BenchCapacity: z.BenchCapacity,
		HoldsStadium:  s.HoldsStadium(),
		Total:         s.Total(),
	}
	for i, st := range z.Bench {
		v.Bench[i] = StackViewOf(st)
	}
	return v
}

// StackViewOf returns nil for an empty slot.
func StackViewOf(st *game.Stack) *StackView {
	if st == nil {
		return nil
	}
	return &StackView{
		Cards:       cardViews(st.Cards),
		Top:         st.Top().Name,
		EnergyCount: st.EnergyCount,
		ToolCount:   st.ToolCount,
		Damage:      st.Damage,
	}
}

func CardInstanceView(c *game.CardInstance) CardView {
	return CardView{
		ID:        c.ID,
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		Supertype: c.Supertype.String(),
		Subtypes:  c.Subtypes,
	}
}

func cardViews(cards []*game.CardInstance) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardInstanceView(c))
	}
	return out
}

// EventViews converts logged events for the wire.
func EventViews(events []log.GameEvent) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			Seq:     e.Seq,
			Player:  e.Player,
			Type:    e.Type.String(),
			Card:    e.Card,
			Details: e.Details,
		})
	}
	return out
}
