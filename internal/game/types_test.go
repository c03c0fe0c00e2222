package game

import (
	"encoding/json"
	"testing"
)

func TestExpandAndCollapse(t *testing.T) {
	list := []Card{
		{Name: "Pikachu", ImageURL: "/a.png", Quantity: 4, Supertype: SupertypeCreature},
		{Name: "Nest Ball", ImageURL: "/b.png", Quantity: 3, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeItem}},
		{Name: "Pikachu", ImageURL: "/c.png", Quantity: 1, Supertype: SupertypeCreature},
	}
	deck := ExpandDeck(list, SeatOpponent)
	if len(deck) != 8 {
		t.Fatalf("expanded %d cards, want 8", len(deck))
	}
	for i, ci := range deck {
		if ci.ID != i+1 || ci.Owner != SeatOpponent {
			t.Errorf("card %d: id %d owner %d", i, ci.ID, ci.Owner)
		}
	}

	back := Collapse(deck)
	if len(back) != 3 {
		t.Fatalf("collapsed to %d lines, want 3 (same name, different art stays apart)", len(back))
	}
	for i := range list {
		if back[i].Name != list[i].Name || back[i].ImageURL != list[i].ImageURL || back[i].Quantity != list[i].Quantity {
			t.Errorf("line %d = %v, want %v", i, back[i], list[i])
		}
	}
}

func TestExpandDeckCopiesSubtypes(t *testing.T) {
	list := []Card{{Name: "Judge", Quantity: 2, Supertype: SupertypeTrainer, Subtypes: []string{SubtypeSupporter}}}
	deck := ExpandDeck(list, 0)
	deck[0].Subtypes[0] = "changed"
	if deck[1].Subtypes[0] != SubtypeSupporter || list[0].Subtypes[0] != SubtypeSupporter {
		t.Error("instances share subtype storage")
	}
}

func TestZoneText(t *testing.T) {
	for z := ZoneLibrary; z <= ZoneTrash; z++ {
		got, err := ParseZone(z.String())
		if err != nil || got != z {
			t.Errorf("ParseZone(%q) = %v, %v", z.String(), got, err)
		}
	}
	if z, err := ParseZone("bench"); err != nil || z != ZoneBench {
		t.Errorf("lowercase zone: %v, %v", z, err)
	}
	if _, err := ParseZone("graveyard"); err == nil {
		t.Error("expected error for unknown zone")
	}
}

func TestCommandJSON(t *testing.T) {
	var cmd Command
	raw := `{"source":"Hand","sourceIndex":2,"target":"Bench","targetSlot":4,"insertBelow":true}`
	if err := json.Unmarshal([]byte(raw), &cmd); err != nil {
		t.Fatal(err)
	}
	want := Command{Source: ZoneHand, SourceIndex: 2, Target: ZoneBench, TargetSlot: 4, InsertBelow: true}
	if cmd != want {
		t.Errorf("decoded %+v, want %+v", cmd, want)
	}
	if got := cmd.String(); got != "Hand[2] → Bench[4]" {
		t.Errorf("String() = %q", got)
	}
}

func TestCardInstanceJSONOmitsOwner(t *testing.T) {
	ci := &CardInstance{ID: 3, Owner: 1, Name: "Pikachu", ImageURL: "/p.png", Supertype: SupertypeCreature}
	b, err := json.Marshal(ci)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `{"id":3,"name":"Pikachu","imageUrl":"/p.png","supertype":"Creature"}` {
		t.Errorf("json = %s", got)
	}
}
