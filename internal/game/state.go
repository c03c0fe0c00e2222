package game

import (
	"math/rand/v2"
	"slices"
)

const (
	DeckSizeRequired     = 60
	PrizeCount           = 6
	InitialHandSize      = 7
	BenchSlots           = 8
	DefaultBenchCapacity = 5
)

// Zones is one player's full board at a point in time. Top of the library is
// index 0.
//
// A Zones value is a snapshot: transitions return a new value and never write
// through the slices or stacks of the receiver, so callers may keep old
// snapshots around and diff them against new ones.
type Zones struct {
	Library       []*CardInstance
	Hand          []*CardInstance
	Prizes        []*CardInstance
	Trash         []*CardInstance
	Battlefield   *Stack
	Bench         [BenchSlots]*Stack
	BenchCapacity int
}

// Deal splits an already-ordered deck: prizes first, then the opening hand,
// the remainder becoming the library.
func Deal(deck []*CardInstance, benchCapacity int) Zones {
	deck = slices.Clone(deck)
	prizes := min(PrizeCount, len(deck))
	hand := min(prizes+InitialHandSize, len(deck))
	return Zones{
		Prizes:        deck[:prizes:prizes],
		Hand:          deck[prizes:hand:hand],
		Library:       deck[hand:],
		BenchCapacity: clampCapacity(benchCapacity),
	}
}

func clampCapacity(n int) int {
	if n < 1 {
		return DefaultBenchCapacity
	}
	return min(n, BenchSlots)
}

// Count returns the number of cards across every personal zone.
func (z Zones) Count() int {
	n := len(z.Library) + len(z.Hand) + len(z.Prizes) + len(z.Trash)
	if z.Battlefield != nil {
		n += z.Battlefield.Size()
	}
	for _, s := range z.Bench {
		if s != nil {
			n += s.Size()
		}
	}
	return n
}

// BenchCount returns the number of occupied bench slots.
func (z Zones) BenchCount() int {
	n := 0
	for _, s := range z.Bench {
		if s != nil {
			n++
		}
	}
	return n
}

// FreeBenchSlot returns the first empty usable bench slot, or -1.
func (z Zones) FreeBenchSlot() int {
	for i := 0; i < z.BenchCapacity; i++ {
		if z.Bench[i] == nil {
			return i
		}
	}
	return -1
}

func (z Zones) usableSlot(slot int) bool {
	return slot >= 0 && slot < z.BenchCapacity && slot < BenchSlots
}

func (z Zones) handCard(idx int) (*CardInstance, bool) {
	if idx < 0 || idx >= len(z.Hand) {
		return nil, false
	}
	return z.Hand[idx], true
}

// removeAt returns a copy of cards without the element at i.
func removeAt(cards []*CardInstance, i int) []*CardInstance {
	out := make([]*CardInstance, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

// appendCards returns a copy of cards with more appended.
func appendCards(cards []*CardInstance, more ...*CardInstance) []*CardInstance {
	out := make([]*CardInstance, 0, len(cards)+len(more))
	out = append(out, cards...)
	return append(out, more...)
}

func shuffled(rng *rand.Rand, cards []*CardInstance) []*CardInstance {
	out := slices.Clone(cards)
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}

// Draw moves the top n library cards to the hand. It is ignored when the
// library holds fewer than n cards.
func (z Zones) Draw(n int) (Zones, bool) {
	if n <= 0 || len(z.Library) < n {
		return z, false
	}
	z.Hand = appendCards(z.Hand, z.Library[:n]...)
	z.Library = slices.Clone(z.Library[n:])
	return z, true
}

// ShuffleLibrary permutes the library. A nil rng leaves the order unchanged.
func (z Zones) ShuffleLibrary(rng *rand.Rand) Zones {
	z.Library = shuffled(rng, z.Library)
	return z
}

// Mulligan merges hand and library, shuffles, and redraws up to an opening hand.
func (z Zones) Mulligan(rng *rand.Rand) Zones {
	merged := shuffled(rng, appendCards(z.Hand, z.Library...))
	n := min(InitialHandSize, len(merged))
	z.Hand = merged[:n:n]
	z.Library = merged[n:]
	return z
}

// PlayToBattlefield makes the hand card the new active stack. An occupied
// battlefield is replaced and its whole stack trashed.
func (z Zones) PlayToBattlefield(handIdx int) (Zones, bool) {
	card, ok := z.handCard(handIdx)
	if !ok {
		return z, false
	}
	z.Hand = removeAt(z.Hand, handIdx)
	if z.Battlefield != nil {
		z.Trash = appendCards(z.Trash, z.Battlefield.Cards...)
	}
	z.Battlefield = NewStack(card)
	return z, true
}

// StackOnBattlefield attaches or evolves onto the active stack.
func (z Zones) StackOnBattlefield(handIdx int, insertBelow bool) (Zones, bool) {
	card, ok := z.handCard(handIdx)
	if !ok || !CanStack(card, z.Battlefield) {
		return z, false
	}
	z.Hand = removeAt(z.Hand, handIdx)
	z.Battlefield = AppendOrInsert(card, z.Battlefield, insertBelow)
	return z, true
}

// PlayToBench puts the hand card into an empty usable bench slot.
func (z Zones) PlayToBench(handIdx, slot int) (Zones, bool) {
	card, ok := z.handCard(handIdx)
	if !ok || !z.usableSlot(slot) || z.Bench[slot] != nil {
		return z, false
	}
	z.Hand = removeAt(z.Hand, handIdx)
	z.Bench[slot] = NewStack(card)
	return z, true
}

// StackOnBench attaches or evolves onto a benched stack.
func (z Zones) StackOnBench(handIdx, slot int, insertBelow bool) (Zones, bool) {
	card, ok := z.handCard(handIdx)
	if !ok || !z.usableSlot(slot) || !CanStack(card, z.Bench[slot]) {
		return z, false
	}
	z.Hand = removeAt(z.Hand, handIdx)
	z.Bench[slot] = AppendOrInsert(card, z.Bench[slot], insertBelow)
	return z, true
}

// TakeFromHand removes a hand card and hands it to the caller, for cards that
// leave the personal zones (the shared stadium).
func (z Zones) TakeFromHand(handIdx int) (Zones, *CardInstance, bool) {
	card, ok := z.handCard(handIdx)
	if !ok {
		return z, nil, false
	}
	z.Hand = removeAt(z.Hand, handIdx)
	return z, card, true
}

// TakePrizeCard moves a prize to the hand.
func (z Zones) TakePrizeCard(idx int) (Zones, bool) {
	if idx < 0 || idx >= len(z.Prizes) {
		return z, false
	}
	z.Hand = appendCards(z.Hand, z.Prizes[idx])
	z.Prizes = removeAt(z.Prizes, idx)
	return z, true
}

// SearchLibrary moves any library card to the hand.
func (z Zones) SearchLibrary(idx int) (Zones, bool) {
	if idx < 0 || idx >= len(z.Library) {
		return z, false
	}
	z.Hand = appendCards(z.Hand, z.Library[idx])
	z.Library = removeAt(z.Library, idx)
	return z, true
}

// RecoverFromTrash moves a trashed card back to the hand.
func (z Zones) RecoverFromTrash(idx int) (Zones, bool) {
	if idx < 0 || idx >= len(z.Trash) {
		return z, false
	}
	z.Hand = appendCards(z.Hand, z.Trash[idx])
	z.Trash = removeAt(z.Trash, idx)
	return z, true
}

// AddToTrash appends a card coming from outside the personal zones.
func (z Zones) AddToTrash(card *CardInstance) Zones {
	z.Trash = appendCards(z.Trash, card)
	return z
}

// ToTrash discards from the hand (one card), the battlefield or a bench slot
// (the whole stack). idx is the hand index or bench slot; it is unused for
// the battlefield.
func (z Zones) ToTrash(zone Zone, idx int) (Zones, bool) {
	switch zone {
	case ZoneHand:
		card, ok := z.handCard(idx)
		if !ok {
			return z, false
		}
		z.Hand = removeAt(z.Hand, idx)
		z.Trash = appendCards(z.Trash, card)
		return z, true
	case ZoneBattlefield:
		if z.Battlefield == nil {
			return z, false
		}
		z.Trash = appendCards(z.Trash, z.Battlefield.Cards...)
		z.Battlefield = nil
		return z, true
	case ZoneBench:
		if idx < 0 || idx >= BenchSlots || z.Bench[idx] == nil {
			return z, false
		}
		z.Trash = appendCards(z.Trash, z.Bench[idx].Cards...)
		z.Bench[idx] = nil
		return z, true
	}
	return z, false
}

// BattlefieldToBench retreats the active stack to a bench slot, swapping with
// whatever occupies it.
func (z Zones) BattlefieldToBench(slot int) (Zones, bool) {
	if z.Battlefield == nil || !z.usableSlot(slot) {
		return z, false
	}
	z.Battlefield, z.Bench[slot] = z.Bench[slot], z.Battlefield
	return z, true
}

// BenchToBattlefield promotes a benched stack, swapping with the active one
// when the battlefield is occupied.
func (z Zones) BenchToBattlefield(slot int) (Zones, bool) {
	if slot < 0 || slot >= BenchSlots || z.Bench[slot] == nil {
		return z, false
	}
	z.Battlefield, z.Bench[slot] = z.Bench[slot], z.Battlefield
	return z, true
}

// BenchSwap exchanges two bench slots; the target may be empty.
func (z Zones) BenchSwap(a, b int) (Zones, bool) {
	if a == b || !z.usableSlot(a) || !z.usableSlot(b) || z.Bench[a] == nil {
		return z, false
	}
	z.Bench[a], z.Bench[b] = z.Bench[b], z.Bench[a]
	return z, true
}

// IncreaseBenchCapacity unlocks one more bench slot, up to BenchSlots.
func (z Zones) IncreaseBenchCapacity() (Zones, bool) {
	if z.BenchCapacity >= BenchSlots {
		return z, false
	}
	z.BenchCapacity++
	return z, true
}

// AdjustDamage changes the damage on the battlefield stack or a bench slot.
func (z Zones) AdjustDamage(zone Zone, slot, delta int) (Zones, bool) {
	switch zone {
	case ZoneBattlefield:
		if z.Battlefield == nil {
			return z, false
		}
		z.Battlefield = AdjustDamage(z.Battlefield, delta)
		return z, true
	case ZoneBench:
		if slot < 0 || slot >= BenchSlots || z.Bench[slot] == nil {
			return z, false
		}
		z.Bench[slot] = AdjustDamage(z.Bench[slot], delta)
		return z, true
	}
	return z, false
}

// ReshuffleAndDraw shuffles the whole hand into the library, then draws n
// cards, or as many as the library holds.
func (z Zones) ReshuffleAndDraw(rng *rand.Rand, n int) Zones {
	library := shuffled(rng, appendCards(z.Library, z.Hand...))
	n = max(0, min(n, len(library)))
	z.Hand = library[:n:n]
	z.Library = library[n:]
	return z
}
