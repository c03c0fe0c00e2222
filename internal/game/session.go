package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/peterkuimelis/decksim/internal/log"
)

// SessionConfig holds configuration for creating a practice session.
type SessionConfig struct {
	Deck          []Card // resolved deck list; must total DeckSizeRequired
	Owner         int    // seat index used for card ownership and events
	Seed          uint64 // RNG seed (0 for random)
	NoShuffle     bool   // deal the deck in list order (for deterministic tests)
	BenchCapacity int    // usable bench slots at start (0 = DefaultBenchCapacity)
	Stadium       *StadiumSlot
	Logger        log.EventLogger
	Effects       EffectRegistry
}

// Session owns one player's zones and applies transitions to them. Every
// transition swaps in a complete new snapshot or, when its precondition
// fails, leaves the board untouched and reports false.
//
// A Session is not safe for concurrent use; Table serialises hosts.
type Session struct {
	owner    int
	deckSize int
	zones    Zones
	rng      *rand.Rand
	logger   log.EventLogger
	effects  EffectRegistry

	stadium     *StadiumSlot
	held        *CardInstance // the stadium this session put into play
	unsubscribe func()
}

// NewSession validates the deck, shuffles and deals prizes then the opening hand.
func NewSession(cfg SessionConfig) (*Session, error) {
	if size := DeckSize(cfg.Deck); size != DeckSizeRequired {
		return nil, &ValidationError{Size: size, Want: DeckSizeRequired}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	effects := cfg.Effects
	if effects == nil {
		effects = DefaultEffects()
	}
	stadium := cfg.Stadium
	if stadium == nil {
		stadium = NewStadiumSlot()
	}

	s := &Session{
		owner:   cfg.Owner,
		rng:     rand.New(rand.NewPCG(seed, seed>>1|1)),
		logger:  logger,
		effects: effects,
		stadium: stadium,
	}

	deck := ExpandDeck(cfg.Deck, cfg.Owner)
	s.deckSize = len(deck)
	if !cfg.NoShuffle {
		deck = shuffled(s.rng, deck)
	}
	s.zones = Deal(deck, cfg.BenchCapacity)
	s.unsubscribe = stadium.Subscribe(s.onStadiumChange)

	s.log(log.NewSessionStartEvent(s.owner, s.deckSize, len(s.zones.Prizes), len(s.zones.Hand)))
	return s, nil
}

// Close detaches the session from the stadium slot. A stadium it still holds
// leaves play with it.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	if s.held != nil && s.stadium.Current() == s.held {
		s.stadium.Clear()
	}
	s.held = nil
}

// Owner returns the seat index.
func (s *Session) Owner() int { return s.owner }

// Snapshot returns the current board. The value is never mutated afterwards.
func (s *Session) Snapshot() Zones { return s.zones }

// Stadium returns the shared stadium in play, whoever holds it.
func (s *Session) Stadium() *CardInstance { return s.stadium.Current() }

// HoldsStadium reports whether the stadium in play came from this session.
func (s *Session) HoldsStadium() bool {
	return s.held != nil && s.stadium.Current() == s.held
}

// Total counts every card this session owns, including a held stadium.
// It always equals the deck size.
func (s *Session) Total() int {
	n := s.zones.Count()
	if s.HoldsStadium() {
		n++
	}
	return n
}

// DeckSize returns the number of cards the session was dealt from.
func (s *Session) DeckSize() int { return s.deckSize }

func (s *Session) log(ev log.GameEvent) {
	s.logger.Log(ev)
}

// ignore records a rejected move and reports false.
func (s *Session) ignore(format string, args ...any) bool {
	s.log(log.NewIgnoredEvent(s.owner, fmt.Sprintf(format, args...)))
	return false
}

// --- Library ---

// Draw moves the top n library cards to the hand.
func (s *Session) Draw(n int) bool {
	z, ok := s.zones.Draw(n)
	if !ok {
		return s.ignore("draw %d with %d in library", n, len(s.zones.Library))
	}
	s.zones = z
	s.log(log.NewDrawEvent(s.owner, n))
	return true
}

// ShuffleLibrary randomly permutes the library.
func (s *Session) ShuffleLibrary() bool {
	s.zones = s.zones.ShuffleLibrary(s.rng)
	s.log(log.NewShuffleEvent(s.owner))
	return true
}

// Mulligan shuffles the hand back and redraws an opening hand.
func (s *Session) Mulligan() bool {
	s.zones = s.zones.Mulligan(s.rng)
	s.log(log.NewMulliganEvent(s.owner, len(s.zones.Hand)))
	return true
}

// SearchLibrary takes any library card into the hand.
func (s *Session) SearchLibrary(idx int) bool {
	z, ok := s.zones.SearchLibrary(idx)
	if !ok {
		return s.ignore("search library card %d", idx)
	}
	card := s.zones.Library[idx]
	s.zones = z
	s.log(log.NewSearchEvent(s.owner, card.Name))
	return true
}

// --- Battlefield and bench ---

// PlayToBattlefield makes a hand card the active stack, trashing any stack it replaces.
func (s *Session) PlayToBattlefield(handIdx int) bool {
	prev := s.zones.Battlefield
	z, ok := s.zones.PlayToBattlefield(handIdx)
	if !ok {
		return s.ignore("play hand card %d to battlefield", handIdx)
	}
	card := s.zones.Hand[handIdx]
	s.zones = z
	if prev != nil {
		s.log(log.NewReplaceBattlefieldEvent(s.owner, card.Name, prev.Top().Name))
	} else {
		s.log(log.NewPlayBattlefieldEvent(s.owner, card.Name))
	}
	return true
}

// StackOnBattlefield attaches or evolves a hand card onto the active stack.
func (s *Session) StackOnBattlefield(handIdx int, insertBelow bool) bool {
	prev := s.zones.Battlefield
	z, ok := s.zones.StackOnBattlefield(handIdx, insertBelow)
	if !ok {
		return s.ignore("stack hand card %d on battlefield", handIdx)
	}
	card := s.zones.Hand[handIdx]
	s.zones = z
	s.logStacked(card, prev, insertBelow)
	return true
}

// PlayToBench puts a hand card into an empty bench slot.
func (s *Session) PlayToBench(handIdx, slot int) bool {
	z, ok := s.zones.PlayToBench(handIdx, slot)
	if !ok {
		return s.ignore("bench hand card %d in slot %d", handIdx, slot+1)
	}
	card := s.zones.Hand[handIdx]
	s.zones = z
	s.log(log.NewPlayBenchEvent(s.owner, card.Name, slot))
	return true
}

// StackOnBench attaches or evolves a hand card onto a benched stack.
func (s *Session) StackOnBench(handIdx, slot int, insertBelow bool) bool {
	z, ok := s.zones.StackOnBench(handIdx, slot, insertBelow)
	if !ok {
		return s.ignore("stack hand card %d on bench slot %d", handIdx, slot+1)
	}
	card := s.zones.Hand[handIdx]
	prev := s.zones.Bench[slot]
	s.zones = z
	s.logStacked(card, prev, insertBelow)
	return true
}

func (s *Session) logStacked(card *CardInstance, onto *Stack, insertBelow bool) {
	target := onto.Creature()
	if card.IsCreature() {
		s.log(log.NewEvolveEvent(s.owner, card.Name, target.Name))
		return
	}
	s.log(log.NewAttachEvent(s.owner, card.Name, target.Name, insertBelow))
}

// BattlefieldToBench retreats the active stack into a bench slot.
func (s *Session) BattlefieldToBench(slot int) bool {
	z, ok := s.zones.BattlefieldToBench(slot)
	if !ok {
		return s.ignore("retreat to bench slot %d", slot+1)
	}
	name := s.zones.Battlefield.Top().Name
	s.zones = z
	s.log(log.NewRetreatEvent(s.owner, name, slot))
	return true
}

// BenchToBattlefield promotes a benched stack.
func (s *Session) BenchToBattlefield(slot int) bool {
	z, ok := s.zones.BenchToBattlefield(slot)
	if !ok {
		return s.ignore("promote bench slot %d", slot+1)
	}
	name := s.zones.Bench[slot].Top().Name
	s.zones = z
	s.log(log.NewPromoteEvent(s.owner, name, slot))
	return true
}

// BenchSwap exchanges two bench slots.
func (s *Session) BenchSwap(a, b int) bool {
	z, ok := s.zones.BenchSwap(a, b)
	if !ok {
		return s.ignore("swap bench slots %d and %d", a+1, b+1)
	}
	s.zones = z
	s.log(log.NewBenchSwapEvent(s.owner, a, b))
	return true
}

// IncreaseBenchCapacity unlocks another bench slot.
func (s *Session) IncreaseBenchCapacity() bool {
	z, ok := s.zones.IncreaseBenchCapacity()
	if !ok {
		return s.ignore("raise bench capacity past %d", BenchSlots)
	}
	s.zones = z
	s.log(log.NewBenchCapacityEvent(s.owner, z.BenchCapacity))
	return true
}

// AdjustDamage changes the damage counter on the battlefield or a bench slot.
// Pass DamageClear to reset it.
func (s *Session) AdjustDamage(zone Zone, slot, delta int) bool {
	z, ok := s.zones.AdjustDamage(zone, slot, delta)
	if !ok {
		return s.ignore("damage %s %d", zone, slot+1)
	}
	before, after := s.zones.stackAt(zone, slot), z.stackAt(zone, slot)
	s.zones = z
	s.log(log.NewDamageEvent(s.owner, after.Top().Name, before.Damage, after.Damage))
	return true
}

func (z Zones) stackAt(zone Zone, slot int) *Stack {
	if zone == ZoneBattlefield {
		return z.Battlefield
	}
	return z.Bench[slot]
}

// --- Prizes and trash ---

// TakePrizeCard moves a prize into the hand. No win condition is checked.
func (s *Session) TakePrizeCard(idx int) bool {
	z, ok := s.zones.TakePrizeCard(idx)
	if !ok {
		return s.ignore("take prize %d of %d", idx+1, len(s.zones.Prizes))
	}
	s.zones = z
	s.log(log.NewTakePrizeEvent(s.owner, len(z.Prizes)))
	return true
}

// ToTrash discards a hand card, the active stack or a bench stack.
func (s *Session) ToTrash(zone Zone, idx int) bool {
	var name string
	var count int
	switch zone {
	case ZoneHand:
		if c, ok := s.zones.handCard(idx); ok {
			name, count = c.Name, 1
		}
	case ZoneBattlefield:
		if st := s.zones.Battlefield; st != nil {
			name, count = st.Top().Name, st.Size()
		}
	case ZoneBench:
		if idx >= 0 && idx < BenchSlots && s.zones.Bench[idx] != nil {
			name, count = s.zones.Bench[idx].Top().Name, s.zones.Bench[idx].Size()
		}
	}
	z, ok := s.zones.ToTrash(zone, idx)
	if !ok {
		return s.ignore("trash %s %d", zone, idx)
	}
	s.zones = z
	s.log(log.NewSendToTrashEvent(s.owner, name, zone.String(), count))
	return true
}

// RecoverFromTrash returns a trashed card to the hand.
func (s *Session) RecoverFromTrash(idx int) bool {
	z, ok := s.zones.RecoverFromTrash(idx)
	if !ok {
		return s.ignore("recover trash card %d", idx)
	}
	card := s.zones.Trash[idx]
	s.zones = z
	s.log(log.NewRecoverEvent(s.owner, card.Name))
	return true
}

// --- Stadium ---

// MoveToStadium puts a hand card into play as the shared stadium. The card it
// replaces goes to its holder's trash through the slot's observers.
func (s *Session) MoveToStadium(handIdx int) bool {
	z, card, ok := s.zones.TakeFromHand(handIdx)
	if !ok {
		return s.ignore("play hand card %d as stadium", handIdx)
	}
	s.zones = z
	s.log(log.NewStadiumEvent(s.owner, card.Name))
	s.stadium.Set(card)
	s.held = card
	return true
}

// TrashStadium discards the stadium in play to its holder's trash.
func (s *Session) TrashStadium() bool {
	if s.stadium.Current() == nil {
		return s.ignore("trash stadium with none in play")
	}
	s.stadium.Clear()
	return true
}

func (s *Session) onStadiumChange(prev, next *CardInstance) {
	if prev == nil || prev != s.held {
		return
	}
	s.held = nil
	s.zones = s.zones.AddToTrash(prev)
	s.log(log.NewStadiumTrashedEvent(s.owner, prev.Name))
}

// --- Effects ---

// ApplyEffect resolves a scripted effect.
func (s *Session) ApplyEffect(kind EffectKind) bool {
	n, ok := kind.drawCount(s.zones)
	if !ok {
		return s.ignore("unknown effect %q", kind)
	}
	s.zones = s.zones.ReshuffleAndDraw(s.rng, n)
	s.log(log.NewEffectEvent(s.owner, string(kind), len(s.zones.Hand)))
	return true
}

// PlaySupporter trashes a supporter from the hand and resolves the effect
// scripted for it.
func (s *Session) PlaySupporter(handIdx int) bool {
	card, ok := s.zones.handCard(handIdx)
	if !ok || !card.IsSupporter() {
		return s.ignore("play hand card %d as supporter", handIdx)
	}
	kind, ok := s.effects.Lookup(card.Name)
	if !ok {
		return s.ignore("no effect scripted for %s", card.Name)
	}
	z, _ := s.zones.ToTrash(ZoneHand, handIdx)
	s.zones = z
	s.log(log.NewSupporterEvent(s.owner, card.Name))
	return s.ApplyEffect(kind)
}
