package game

import (
	"math"
	"testing"
)

func TestNewStackCounters(t *testing.T) {
	s := NewStack(instance(energy("Fire Energy")))
	if s.Size() != 1 || s.EnergyCount != 1 || s.ToolCount != 0 || s.Damage != 0 {
		t.Fatalf("unexpected stack %+v", s)
	}
	s = NewStack(instance(tool("Choice Belt")))
	if s.ToolCount != 1 || s.EnergyCount != 0 {
		t.Fatalf("tool stack counters = %d/%d", s.EnergyCount, s.ToolCount)
	}
}

func TestCanStack(t *testing.T) {
	pika := NewStack(instance(creature("Pikachu")))
	withTool := AppendOrInsert(instance(tool("Choice Belt")), pika, false)

	tests := []struct {
		name  string
		card  Card
		stack *Stack
		want  bool
	}{
		{"energy onto creature", energy("Lightning Energy"), pika, true},
		{"tool onto creature", tool("Bravery Charm"), pika, true},
		{"evolution onto creature", creature("Raichu"), pika, true},
		{"evolution under a tool", creature("Raichu"), withTool, true},
		{"item onto creature", item("Nest Ball"), pika, false},
		{"supporter onto creature", supporter("Judge"), pika, false},
		{"nil stack", energy("Lightning Energy"), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanStack(instance(tt.card), tt.stack); got != tt.want {
				t.Errorf("CanStack = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanStackEnergyNeedsCreature(t *testing.T) {
	// A pile without any creature rejects energy no matter how tall it is.
	s := NewStack(instance(item("Nest Ball")))
	for i := 0; i < 5; i++ {
		s = AppendOrInsert(instance(tool("Choice Belt")), s, false)
		if CanStack(instance(energy("Water Energy")), s) {
			t.Fatalf("energy stackable on creature-less pile of %d", s.Size())
		}
	}
}

func TestAppendOrInsert(t *testing.T) {
	base := AdjustDamage(NewStack(instance(creature("Pikachu"))), 30)
	e := instance(energy("Lightning Energy"))

	top := AppendOrInsert(e, base, false)
	if top.Top() != e {
		t.Errorf("expected energy on top")
	}
	if top.Size() != 2 || top.EnergyCount != 1 || top.Damage != 30 {
		t.Errorf("top insert = size %d energy %d damage %d", top.Size(), top.EnergyCount, top.Damage)
	}

	below := AppendOrInsert(e, base, true)
	if below.Cards[0] != e || below.Top().Name != "Pikachu" {
		t.Errorf("expected energy at the bottom, got %v", below.Cards)
	}
	if below.EnergyCount != 1 {
		t.Errorf("EnergyCount = %d, want 1", below.EnergyCount)
	}

	if base.Size() != 1 || base.EnergyCount != 0 {
		t.Errorf("original stack was modified: %+v", base)
	}
}

func TestCreatureFindsTopMostCreature(t *testing.T) {
	s := NewStack(instance(creature("Pichu")))
	s = AppendOrInsert(instance(creature("Pikachu")), s, false)
	s = AppendOrInsert(instance(energy("Lightning Energy")), s, false)
	s = AppendOrInsert(instance(tool("Choice Belt")), s, false)

	if got := s.Creature().Name; got != "Pikachu" {
		t.Errorf("Creature() = %s, want Pikachu", got)
	}
	if s.EnergyCount != 1 || s.ToolCount != 1 {
		t.Errorf("counters = %d/%d, want 1/1", s.EnergyCount, s.ToolCount)
	}
}

func TestAdjustDamage(t *testing.T) {
	s := NewStack(instance(creature("Pikachu")))
	s = AdjustDamage(s, 10)
	s = AdjustDamage(s, 50)
	s = AdjustDamage(s, 100)
	if s.Damage != 160 {
		t.Fatalf("Damage = %d, want 160", s.Damage)
	}
	if got := AdjustDamage(s, -500).Damage; got != 0 {
		t.Errorf("negative damage clamps to 0, got %d", got)
	}
	cleared := AdjustDamage(s, DamageClear)
	if cleared.Damage != 0 {
		t.Errorf("DamageClear left %d", cleared.Damage)
	}
	if s.Damage != 160 {
		t.Errorf("AdjustDamage mutated its input")
	}
}

func TestAdjustDamageSaturates(t *testing.T) {
	s := AdjustDamage(NewStack(instance(creature("Pikachu"))), 50)
	s = AdjustDamage(s, math.MaxInt)
	if s.Damage != math.MaxInt {
		t.Fatalf("Damage = %d, want saturation at MaxInt", s.Damage)
	}
	s = AdjustDamage(s, math.MaxInt)
	if s.Damage != math.MaxInt {
		t.Errorf("second add wrapped to %d", s.Damage)
	}
	if got := AdjustDamage(s, -10).Damage; got != math.MaxInt-10 {
		t.Errorf("subtract after saturation = %d", got)
	}
	if got := AdjustDamage(s, math.MinInt+1).Damage; got != 0 {
		t.Errorf("large negative delta = %d, want 0", got)
	}
}
