package deckcode

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/peterkuimelis/decksim/internal/game"
)

// Resolver extracts deck lists from deck-code pages laid out as its Config
// describes. It is safe for concurrent use.
type Resolver struct {
	cfg       Config
	nameRE    *regexp.Regexp
	imageRE   *regexp.Regexp
	altRE     *regexp.Regexp // nil when the page has no alternate names
	fallbacks map[string]fieldFallback
	want      map[string]bool
}

// New compiles the patterns for cfg.
func New(cfg Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("deckcode config: %w", err)
	}
	r := &Resolver{
		cfg:       cfg,
		nameRE:    assignPattern(cfg.NameVar),
		imageRE:   assignPattern(cfg.ImageVar),
		fallbacks: make(map[string]fieldFallback, len(cfg.Categories)),
		want:      make(map[string]bool, len(cfg.Categories)),
	}
	if cfg.AltNameVar != "" {
		r.altRE = assignPattern(cfg.AltNameVar)
	}
	for _, cat := range cfg.Categories {
		r.want[cat.Field] = true
		r.fallbacks[cat.Field] = newFieldFallback(cat.Field)
	}
	return r, nil
}

// Config returns the layout the resolver was built with.
func (r *Resolver) Config() Config { return r.cfg }

// Resolve reads the catalog and the category fields out of page and returns
// the deck list in category order. It does not check the deck size.
func (r *Resolver) Resolve(page string) ([]game.Card, error) {
	names := scanCatalog(r.nameRE, page)
	images := scanCatalog(r.imageRE, page)
	alts := scanCatalog(r.altRE, page)
	if len(names) == 0 && len(images) == 0 && len(alts) == 0 {
		return nil, &ParseError{Err: ErrNoCatalog}
	}

	fields := scanFields(page, r.want)
	cards := make([]game.Card, 0)
	for _, cat := range r.cfg.Categories {
		payload, ok := fields[cat.Field]
		if !ok {
			payload, ok = r.fallbacks[cat.Field].find(page)
		}
		if !ok {
			continue
		}
		for _, e := range parseEntries(payload) {
			path, ok := images[e.id]
			if !ok || path == "" {
				continue
			}
			name := alts[e.id]
			if name == "" {
				name = names[e.id]
			}
			card := game.Card{
				Name:      name,
				ImageURL:  r.imageURL(path),
				Quantity:  e.quantity,
				Supertype: cat.Supertype,
			}
			if cat.Subtype != "" {
				card.Subtypes = []string{cat.Subtype}
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

func (r *Resolver) imageURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := r.cfg.BaseURL
	if strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/") {
		return base + path[1:]
	}
	if base != "" && !strings.HasSuffix(base, "/") && !strings.HasPrefix(path, "/") {
		return base + "/" + path
	}
	return base + path
}

var defaultResolver = sync.OnceValue(func() *Resolver {
	r, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return r
})

// Resolve parses page with DefaultConfig.
func Resolve(page string) ([]game.Card, error) {
	return defaultResolver().Resolve(page)
}
