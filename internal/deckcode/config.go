// Package deckcode turns a deck-code page from the card site into a deck list.
//
// Resolving is pure: the caller supplies the page HTML. Fetcher is a small
// helper for hosts that need to download it first.
package deckcode

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/decksim/internal/game"
)

const (
	DefaultBaseURL = "https://www.pokemon-card.com"
	DefaultDeckURL = DefaultBaseURL + "/deck/confirm.html/deckID/{code}/"
)

// Category binds one hidden deck field to the card kind it lists.
type Category struct {
	Field     string
	Supertype game.Supertype
	Subtype   string // empty for creatures and energy
}

// Config is everything the resolver needs to know about the page layout.
type Config struct {
	BaseURL    string // prefix for relative image paths
	DeckURL    string // page URL template, {code} is replaced
	NameVar    string
	ImageVar   string
	AltNameVar string
	Categories []Category // output order
}

// DefaultConfig matches the pokemon-card.com deck confirmation page.
func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		DeckURL:    DefaultDeckURL,
		NameVar:    "PCGDECK.searchItemName",
		ImageVar:   "PCGDECK.searchItemCardPict",
		AltNameVar: "PCGDECK.searchItemNameAlt",
		Categories: []Category{
			{Field: "deck_pke", Supertype: game.SupertypeCreature},
			{Field: "deck_gds", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeItem},
			{Field: "deck_tool", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeTool},
			{Field: "deck_sup", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeSupporter},
			{Field: "deck_sta", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeStadium},
			{Field: "deck_ene", Supertype: game.SupertypeEnergy},
			{Field: "deck_tech", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeTechnicalMachine},
			{Field: "deck_ajs", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeItem},
		},
	}
}

// Validate checks that the config can drive a resolver.
func (c Config) Validate() error {
	var errs []error
	if c.NameVar == "" {
		errs = append(errs, errors.New("name variable is empty"))
	}
	if c.ImageVar == "" {
		errs = append(errs, errors.New("image variable is empty"))
	}
	if len(c.Categories) == 0 {
		errs = append(errs, errors.New("no categories"))
	}
	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Field == "" {
			errs = append(errs, fmt.Errorf("category %d: empty field", i))
			continue
		}
		if seen[cat.Field] {
			errs = append(errs, fmt.Errorf("category %d: duplicate field %q", i, cat.Field))
		}
		seen[cat.Field] = true
	}
	return errors.Join(errs...)
}
