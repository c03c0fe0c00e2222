package game

import "math"

// DamageClear is the AdjustDamage delta that resets a stack's damage to zero.
const DamageClear = math.MinInt

// Stack is the pile of cards occupying one battlefield or bench slot: a
// creature with its evolutions and attachments. Cards are ordered bottom to top.
//
// Stacks are values. Every operation returns a new *Stack and leaves its
// argument untouched, so snapshots holding the old pointer stay valid.
type Stack struct {
	Cards       []*CardInstance
	EnergyCount int
	ToolCount   int
	Damage      int
}

// NewStack creates a single-card stack.
func NewStack(card *CardInstance) *Stack {
	s := &Stack{Cards: []*CardInstance{card}}
	s.count(card)
	return s
}

func (s *Stack) count(card *CardInstance) {
	if card.IsEnergy() {
		s.EnergyCount++
	}
	if card.IsTool() {
		s.ToolCount++
	}
}

// Size returns the number of cards in the stack.
func (s *Stack) Size() int {
	return len(s.Cards)
}

// Top returns the card on top of the pile.
func (s *Stack) Top() *CardInstance {
	return s.Cards[len(s.Cards)-1]
}

// Creature returns the top-most creature anywhere in the pile, or nil.
// Energy and tools may sit above it, so this is not always Top.
func (s *Stack) Creature() *CardInstance {
	for i := len(s.Cards) - 1; i >= 0; i-- {
		if s.Cards[i].IsCreature() {
			return s.Cards[i]
		}
	}
	return nil
}

// CanStack reports whether card may join the stack: energy, tools and
// evolving creatures attach to a pile that already holds a creature.
func CanStack(card *CardInstance, s *Stack) bool {
	if card == nil || s == nil || s.Creature() == nil {
		return false
	}
	return card.IsEnergy() || card.IsTool() || card.IsCreature()
}

// AppendOrInsert returns a new stack with card placed on top, or at the bottom
// when insertBelow is set. Damage carries over.
func AppendOrInsert(card *CardInstance, s *Stack, insertBelow bool) *Stack {
	cards := make([]*CardInstance, 0, len(s.Cards)+1)
	if insertBelow {
		cards = append(cards, card)
		cards = append(cards, s.Cards...)
	} else {
		cards = append(cards, s.Cards...)
		cards = append(cards, card)
	}
	next := &Stack{
		Cards:       cards,
		EnergyCount: s.EnergyCount,
		ToolCount:   s.ToolCount,
		Damage:      s.Damage,
	}
	next.count(card)
	return next
}

// AdjustDamage returns a new stack with delta added to its damage counter.
// DamageClear resets it; the result stays within [0, math.MaxInt].
func AdjustDamage(s *Stack, delta int) *Stack {
	next := *s
	switch {
	case delta == DamageClear:
		next.Damage = 0
	case delta > 0 && next.Damage > math.MaxInt-delta:
		next.Damage = math.MaxInt
	default:
		next.Damage += delta
	}
	if next.Damage < 0 {
		next.Damage = 0
	}
	return &next
}
