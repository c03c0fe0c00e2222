package game

import "fmt"

// EffectKind names a scripted supporter effect.
type EffectKind string

const (
	// EffectReshuffleDrawToPrizeCount shuffles the hand into the library and
	// draws as many cards as there are prizes left.
	EffectReshuffleDrawToPrizeCount EffectKind = "reshuffle_draw_prize_count"
	// EffectReshuffleDrawFour shuffles the hand into the library and draws 4.
	EffectReshuffleDrawFour EffectKind = "reshuffle_draw_four"
)

// ParseEffectKind validates an effect name from configuration or the wire.
func ParseEffectKind(s string) (EffectKind, error) {
	switch k := EffectKind(s); k {
	case EffectReshuffleDrawToPrizeCount, EffectReshuffleDrawFour:
		return k, nil
	}
	return "", fmt.Errorf("unknown effect %q", s)
}

// drawCount is how many cards the effect draws from the given board.
func (k EffectKind) drawCount(z Zones) (int, bool) {
	switch k {
	case EffectReshuffleDrawToPrizeCount:
		return len(z.Prizes), true
	case EffectReshuffleDrawFour:
		return 4, true
	}
	return 0, false
}

// EffectRegistry maps supporter card names to their scripted effect.
type EffectRegistry map[string]EffectKind

// DefaultEffects covers the supporters the practice board scripts out of the
// box, under their localized and English names.
func DefaultEffects() EffectRegistry {
	return EffectRegistry{
		"ナンジャモ":  EffectReshuffleDrawToPrizeCount,
		"Iono":   EffectReshuffleDrawToPrizeCount,
		"ジャッジマン": EffectReshuffleDrawFour,
		"Judge":  EffectReshuffleDrawFour,
	}
}

// Lookup returns the effect scripted for a card name.
func (r EffectRegistry) Lookup(name string) (EffectKind, bool) {
	k, ok := r[name]
	return k, ok
}
