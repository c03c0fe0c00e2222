package game

import "fmt"

// Command is a drag-and-drop move: a card (or stack) picked up from one zone
// and released over another. The gesture layer produces these without knowing
// the rules; Session.Apply decides what the move means and whether it is legal.
type Command struct {
	Source      Zone `json:"source"`
	SourceIndex int  `json:"sourceIndex"` // hand/prize/library/trash index or bench slot
	Target      Zone `json:"target"`
	TargetSlot  int  `json:"targetSlot,omitempty"` // bench slot when Target is ZoneBench
	InsertBelow bool `json:"insertBelow,omitempty"`
}

func (c Command) String() string {
	if c.Target == ZoneBench {
		return fmt.Sprintf("%s[%d] → %s[%d]", c.Source, c.SourceIndex, c.Target, c.TargetSlot)
	}
	return fmt.Sprintf("%s[%d] → %s", c.Source, c.SourceIndex, c.Target)
}

// Apply maps a move onto the matching transition. Moves with no meaning
// (hand onto prizes, for instance) are ignored like any other illegal move.
func (s *Session) Apply(cmd Command) bool {
	switch cmd.Source {
	case ZoneHand:
		return s.applyFromHand(cmd)
	case ZoneBattlefield:
		switch cmd.Target {
		case ZoneBench:
			return s.BattlefieldToBench(cmd.TargetSlot)
		case ZoneTrash:
			return s.ToTrash(ZoneBattlefield, 0)
		}
	case ZoneBench:
		switch cmd.Target {
		case ZoneBattlefield:
			return s.BenchToBattlefield(cmd.SourceIndex)
		case ZoneBench:
			return s.BenchSwap(cmd.SourceIndex, cmd.TargetSlot)
		case ZoneTrash:
			return s.ToTrash(ZoneBench, cmd.SourceIndex)
		}
	case ZonePrizes:
		if cmd.Target == ZoneHand {
			return s.TakePrizeCard(cmd.SourceIndex)
		}
	case ZoneLibrary:
		if cmd.Target == ZoneHand {
			return s.SearchLibrary(cmd.SourceIndex)
		}
	case ZoneTrash:
		if cmd.Target == ZoneHand {
			return s.RecoverFromTrash(cmd.SourceIndex)
		}
	case ZoneStadium:
		if cmd.Target == ZoneTrash {
			return s.TrashStadium()
		}
	}
	return s.ignore("move %s", cmd)
}

// applyFromHand resolves hand drops. Onto an occupied slot the card stacks
// when it legally can; otherwise the battlefield is replaced and the bench
// refuses the drop.
func (s *Session) applyFromHand(cmd Command) bool {
	card, ok := s.zones.handCard(cmd.SourceIndex)
	if !ok {
		return s.ignore("move %s", cmd)
	}
	switch cmd.Target {
	case ZoneBattlefield:
		if CanStack(card, s.zones.Battlefield) {
			return s.StackOnBattlefield(cmd.SourceIndex, cmd.InsertBelow)
		}
		return s.PlayToBattlefield(cmd.SourceIndex)
	case ZoneBench:
		if cmd.TargetSlot >= 0 && cmd.TargetSlot < BenchSlots && s.zones.Bench[cmd.TargetSlot] == nil {
			return s.PlayToBench(cmd.SourceIndex, cmd.TargetSlot)
		}
		return s.StackOnBench(cmd.SourceIndex, cmd.TargetSlot, cmd.InsertBelow)
	case ZoneStadium:
		return s.MoveToStadium(cmd.SourceIndex)
	case ZoneTrash:
		return s.ToTrash(ZoneHand, cmd.SourceIndex)
	}
	return s.ignore("move %s", cmd)
}
