package game

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// --- Enums ---

type Supertype int

const (
	SupertypeCreature Supertype = iota
	SupertypeTrainer
	SupertypeEnergy
)

func (s Supertype) String() string {
	switch s {
	case SupertypeCreature:
		return "Creature"
	case SupertypeTrainer:
		return "Trainer"
	case SupertypeEnergy:
		return "Energy"
	default:
		return "Unknown"
	}
}

// ParseSupertype is the inverse of Supertype.String.
func ParseSupertype(s string) (Supertype, error) {
	switch s {
	case "Creature":
		return SupertypeCreature, nil
	case "Trainer":
		return SupertypeTrainer, nil
	case "Energy":
		return SupertypeEnergy, nil
	default:
		return 0, fmt.Errorf("unknown supertype %q", s)
	}
}

func (s Supertype) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Supertype) UnmarshalText(b []byte) error {
	v, err := ParseSupertype(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Subtypes used by the stacking and effect rules.
const (
	SubtypeItem             = "Item"
	SubtypeTool             = "Pokémon Tool"
	SubtypeSupporter        = "Supporter"
	SubtypeStadium          = "Stadium"
	SubtypeTechnicalMachine = "Technical Machine"
)

// --- Card definition (canonical, from the deck code resolver) ---

// Card is one deck-list line: a distinct card and how many copies the deck runs.
type Card struct {
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	Quantity  int       `json:"quantity"`
	Supertype Supertype `json:"supertype"`
	Subtypes  []string  `json:"subtypes,omitempty"`
}

func (c Card) String() string {
	return fmt.Sprintf("%dx %s", c.Quantity, c.Name)
}

// DeckSize returns the total number of physical cards in a deck list.
func DeckSize(cards []Card) int {
	n := 0
	for _, c := range cards {
		n += c.Quantity
	}
	return n
}

// --- CardInstance (one physical copy inside the zones) ---

type CardInstance struct {
	ID        int // unique instance ID within a session
	Owner     int // seat index (0 self, 1 opponent)
	Name      string
	ImageURL  string
	Supertype Supertype
	Subtypes  []string
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Name
}

func (ci *CardInstance) HasSubtype(sub string) bool {
	return slices.Contains(ci.Subtypes, sub)
}

func (ci *CardInstance) IsCreature() bool { return ci.Supertype == SupertypeCreature }
func (ci *CardInstance) IsEnergy() bool   { return ci.Supertype == SupertypeEnergy }
func (ci *CardInstance) IsTool() bool     { return ci.HasSubtype(SubtypeTool) }

// IsSupporter reports whether the card is a Trainer-Supporter.
func (ci *CardInstance) IsSupporter() bool {
	return ci.Supertype == SupertypeTrainer && ci.HasSubtype(SubtypeSupporter)
}

func (ci *CardInstance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int       `json:"id"`
		Name      string    `json:"name"`
		ImageURL  string    `json:"imageUrl"`
		Supertype Supertype `json:"supertype"`
		Subtypes  []string  `json:"subtypes,omitempty"`
	}{ci.ID, ci.Name, ci.ImageURL, ci.Supertype, ci.Subtypes})
}

// ExpandDeck turns a deck list into one instance per physical card, numbered
// from 1 in list order.
func ExpandDeck(cards []Card, owner int) []*CardInstance {
	out := make([]*CardInstance, 0, DeckSize(cards))
	for _, c := range cards {
		for i := 0; i < c.Quantity; i++ {
			out = append(out, &CardInstance{
				ID:        len(out) + 1,
				Owner:     owner,
				Name:      c.Name,
				ImageURL:  c.ImageURL,
				Supertype: c.Supertype,
				Subtypes:  slices.Clone(c.Subtypes),
			})
		}
	}
	return out
}

// Collapse groups instances back into deck-list lines keyed by name and image,
// in first-seen order.
func Collapse(instances []*CardInstance) []Card {
	type key struct{ name, image string }
	index := make(map[key]int)
	var out []Card
	for _, ci := range instances {
		k := key{ci.Name, ci.ImageURL}
		if i, ok := index[k]; ok {
			out[i].Quantity++
			continue
		}
		index[k] = len(out)
		out = append(out, Card{
			Name:      ci.Name,
			ImageURL:  ci.ImageURL,
			Quantity:  1,
			Supertype: ci.Supertype,
			Subtypes:  slices.Clone(ci.Subtypes),
		})
	}
	return out
}

// --- Zone types ---

type Zone int

const (
	ZoneNone Zone = iota
	ZoneLibrary
	ZoneHand
	ZonePrizes
	ZoneBattlefield
	ZoneBench
	ZoneStadium
	ZoneTrash
)

func (z Zone) String() string {
	switch z {
	case ZoneLibrary:
		return "Library"
	case ZoneHand:
		return "Hand"
	case ZonePrizes:
		return "Prizes"
	case ZoneBattlefield:
		return "Battlefield"
	case ZoneBench:
		return "Bench"
	case ZoneStadium:
		return "Stadium"
	case ZoneTrash:
		return "Trash"
	default:
		return "None"
	}
}

// ParseZone is the inverse of Zone.String, ignoring case.
func ParseZone(s string) (Zone, error) {
	for z := ZoneLibrary; z <= ZoneTrash; z++ {
		if strings.EqualFold(z.String(), s) {
			return z, nil
		}
	}
	return ZoneNone, fmt.Errorf("unknown zone %q", s)
}

func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

func (z *Zone) UnmarshalText(b []byte) error {
	v, err := ParseZone(string(b))
	if err != nil {
		return err
	}
	*z = v
	return nil
}
