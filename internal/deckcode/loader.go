package deckcode

import (
	"context"
	"errors"

	"github.com/peterkuimelis/decksim/internal/game"
)

// PageFetcher downloads the deck page for a code. *Fetcher implements it.
type PageFetcher interface {
	Fetch(ctx context.Context, code string) (string, error)
}

// Source is where a host gets a deck: a site code, or page HTML it already
// has. HTML wins when both are set.
type Source struct {
	Code string `json:"code,omitempty"`
	HTML string `json:"html,omitempty"`
}

// Loader pairs a resolver with a fetcher for hosts.
type Loader struct {
	Resolver *Resolver
	Fetcher  PageFetcher
}

// NewLoader builds a loader for cfg over a default HTTP fetcher.
func NewLoader(cfg Config) (*Loader, error) {
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Loader{Resolver: r, Fetcher: NewFetcher(cfg.DeckURL, nil)}, nil
}

// Load resolves src into a deck list.
func (l *Loader) Load(ctx context.Context, src Source) ([]game.Card, error) {
	html := src.HTML
	if html == "" {
		if src.Code == "" {
			return nil, errors.New("deck source needs a code or html")
		}
		if l.Fetcher == nil {
			return nil, errors.New("no fetcher configured for deck codes")
		}
		page, err := l.Fetcher.Fetch(ctx, src.Code)
		if err != nil {
			return nil, err
		}
		html = page
	}
	return l.Resolver.Resolve(html)
}
