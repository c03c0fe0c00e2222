package game

import (
	"testing"

	"github.com/peterkuimelis/decksim/internal/log"
)

// --- Test card helpers ---

func creature(name string) Card {
	return Card{Name: name, ImageURL: "/img/" + name + ".png", Quantity: 1, Supertype: SupertypeCreature}
}

func energy(name string) Card {
	return Card{Name: name, ImageURL: "/img/" + name + ".png", Quantity: 1, Supertype: SupertypeEnergy}
}

func tool(name string) Card {
	return Card{Name: name, Quantity: 1, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeTool}}
}

func item(name string) Card {
	return Card{Name: name, Quantity: 1, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeItem}}
}

func supporter(name string) Card {
	return Card{Name: name, Quantity: 1, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeSupporter}}
}

func stadiumCard(name string) Card {
	return Card{Name: name, Quantity: 1, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeStadium}}
}

func instance(c Card) *CardInstance {
	return ExpandDeck([]Card{c}, 0)[0]
}

// practiceDeck builds a 60-card list that deals deterministically with
// NoShuffle: six "Prize Token" prizes, then hand (padded to seven with
// "Hand Filler"), then "Library Filler" for the rest.
func practiceDeck(hand ...Card) []Card {
	deck := []Card{{Name: "Prize Token", Quantity: PrizeCount, Supertype: SupertypeCreature}}
	deck = append(deck, hand...)
	if pad := InitialHandSize - len(hand); pad > 0 {
		deck = append(deck, Card{Name: "Hand Filler", Quantity: pad, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeItem}})
	}
	deck = append(deck, Card{Name: "Library Filler", Quantity: DeckSizeRequired - DeckSize(deck), Supertype: SupertypeTrainer, Subtypes: []string{SubtypeItem}})
	return deck
}

// newTestSession deals practiceDeck(hand...) in list order.
func newTestSession(t *testing.T, hand ...Card) (*Session, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	s, err := NewSession(SessionConfig{
		Deck:      practiceDeck(hand...),
		Seed:      42,
		NoShuffle: true,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, logger
}

// handIndex returns the position of the first hand card with the given name.
func handIndex(t *testing.T, s *Session, name string) int {
	t.Helper()
	for i, c := range s.Snapshot().Hand {
		if c.Name == name {
			return i
		}
	}
	t.Fatalf("%s not in hand", name)
	return -1
}

func assertConserved(t *testing.T, s *Session) {
	t.Helper()
	if got := s.Total(); got != DeckSizeRequired {
		t.Fatalf("card count = %d, want %d\n%s", got, DeckSizeRequired, log.FormatAll(s.logger.Events()))
	}
}
