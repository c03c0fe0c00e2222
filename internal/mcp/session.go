package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/decksim/internal/config"
	"github.com/peterkuimelis/decksim/internal/deckcode"
	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/log"
	decknet "github.com/peterkuimelis/decksim/internal/net"
)

var errNoPractice = errors.New("no practice is running; use start_practice first")

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Table   string              `json:"table"`
	Applied bool                `json:"applied"`
	Events  []decknet.EventView `json:"events"`
	State   *decknet.StateView  `json:"state,omitempty"`
}

// DeckChoice names a deck by saved name, site code or page HTML. The first
// non-empty field wins in that order.
type DeckChoice struct {
	Saved string
	Code  string
	HTML  string
}

func (d DeckChoice) empty() bool { return d.Saved == "" && d.Code == "" && d.HTML == "" }

// Practice holds the single table of an MCP stdio process.
type Practice struct {
	cfg    config.Config
	loader *deckcode.Loader

	mu     sync.Mutex
	id     string
	table  *game.Table
	events *log.MemoryLogger // holds only what the next response reports
}

// NewPractice builds a practice host for cfg. A nil fetcher downloads codes
// from the configured deck URL.
func NewPractice(cfg config.Config, fetcher deckcode.PageFetcher) (*Practice, error) {
	rc, err := cfg.ResolverConfig()
	if err != nil {
		return nil, err
	}
	loader, err := deckcode.NewLoader(rc)
	if err != nil {
		return nil, err
	}
	if fetcher != nil {
		loader.Fetcher = fetcher
	}
	return &Practice{cfg: cfg, loader: loader}, nil
}

// Start replaces any running table with a fresh one. opponent may be empty.
func (p *Practice) Start(ctx context.Context, self, opponent DeckChoice) (*ToolResponse, error) {
	selfCards, err := p.load(ctx, self)
	if err != nil {
		return nil, fmt.Errorf("self deck: %w", err)
	}
	var oppCards []game.Card
	if !opponent.empty() {
		if oppCards, err = p.load(ctx, opponent); err != nil {
			return nil, fmt.Errorf("opponent deck: %w", err)
		}
	}

	tc, err := p.cfg.TableConfig()
	if err != nil {
		return nil, err
	}
	events := log.NewMemoryLogger()
	tc.Logger = events
	tbl, err := game.NewTable(selfCards, oppCards, tc)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if p.table != nil {
		old := p.table
		old.Do(func(t *game.Table) { t.Close() })
	}
	p.id = uuid.NewString()
	p.table, p.events = tbl, events
	p.mu.Unlock()

	// The opening deal is reported as events of the first response.
	var opening []decknet.EventView
	tbl.Do(func(*game.Table) { opening = decknet.EventViews(events.Drain()) })
	resp, err := p.Handle(decknet.ClientMessage{Type: decknet.MsgState})
	if err != nil {
		return nil, err
	}
	resp.Events = opening
	return resp, nil
}

func (p *Practice) load(ctx context.Context, d DeckChoice) ([]game.Card, error) {
	switch {
	case d.Saved != "":
		saved, ok := p.cfg.Deck(d.Saved)
		if !ok {
			return nil, fmt.Errorf("unknown saved deck %q", d.Saved)
		}
		return p.loader.Load(ctx, deckcode.Source{Code: saved.Code})
	case d.Code != "":
		return p.loader.Load(ctx, deckcode.Source{Code: d.Code})
	case d.HTML != "":
		return p.loader.Load(ctx, deckcode.Source{HTML: d.HTML})
	}
	return nil, errors.New("deck needs a saved name, code or html")
}

// Handle runs msg against the current table. Events are dropped from the
// log once a response carries them.
func (p *Practice) Handle(msg decknet.ClientMessage) (*ToolResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.table == nil {
		return nil, errNoPractice
	}

	out := decknet.Handle(p.table, msg)
	p.table.Do(func(*game.Table) { p.events.Drain() })
	if out.Type == "error" {
		return nil, errors.New(out.Error)
	}
	resp := &ToolResponse{
		Table:   p.id,
		Applied: out.Applied,
		Events:  out.Events,
		State:   out.State,
	}
	// Ensure events is never null in JSON
	if resp.Events == nil {
		resp.Events = []decknet.EventView{}
	}
	return resp, nil
}

// Close releases the running table.
func (p *Practice) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.table != nil {
		p.table.Do(func(t *game.Table) { t.Close() })
		p.table, p.id, p.events = nil, "", nil
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
