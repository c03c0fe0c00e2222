// Package config loads decksim settings from a YAML file with DECKSIM_*
// environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/peterkuimelis/decksim/internal/deckcode"
	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/gesture"
)

type Config struct {
	Resolver Resolver          `yaml:"resolver"`
	Session  Session           `yaml:"session"`
	Gesture  Gesture           `yaml:"gesture"`
	Effects  Effects           `yaml:"effects"`
	Decks    []SavedDeck       `yaml:"decks"`
	Logging  Logging           `yaml:"logging"`
	Web      Web               `yaml:"web"`
}

type Resolver struct {
	BaseURL    string     `yaml:"base_url"`
	DeckURL    string     `yaml:"deck_url"`
	NameVar    string     `yaml:"name_var"`
	ImageVar   string     `yaml:"image_var"`
	AltNameVar string     `yaml:"alt_name_var"`
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Field     string `yaml:"field"`
	Supertype string `yaml:"supertype"`
	Subtype   string `yaml:"subtype,omitempty"`
}

type Session struct {
	BenchCapacity int    `yaml:"bench_capacity"`
	Seed          uint64 `yaml:"seed"` // 0 picks a random seed per table
}

type Gesture struct {
	DragDelay       time.Duration `yaml:"drag_delay"`
	ScrollThreshold float64       `yaml:"scroll_threshold"`
	LongDrag        time.Duration `yaml:"long_drag"`
}

// Effects maps supporter card names to effect kinds. A document that sets
// the section replaces the whole map, so the file can also remove entries.
type Effects map[string]string

func (e *Effects) UnmarshalYAML(value *yaml.Node) error {
	m := make(map[string]string)
	if err := value.Decode(&m); err != nil {
		return err
	}
	*e = m
	return nil
}

// SavedDeck is a named deck code offered by the hosts.
type SavedDeck struct {
	Name string `yaml:"name" json:"name"`
	Code string `yaml:"code" json:"code"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

type Web struct {
	Addr      string        `yaml:"addr"`
	TableTTL  time.Duration `yaml:"table_ttl"`  // idle tables are closed after this; 0 keeps them
	EventKeep int           `yaml:"event_keep"` // practice events kept in memory per table
}

// overrides holds the environment variables that can replace file values.
// Unset variables leave their pointer nil.
type overrides struct {
	BaseURL       *string        `env:"DECKSIM_BASE_URL"`
	DeckURL       *string        `env:"DECKSIM_DECK_URL"`
	BenchCapacity *int           `env:"DECKSIM_BENCH_CAPACITY"`
	Seed          *uint64        `env:"DECKSIM_SEED"`
	DragDelay     *time.Duration `env:"DECKSIM_DRAG_DELAY"`
	LongDrag      *time.Duration `env:"DECKSIM_LONG_DRAG"`
	LogLevel      *string        `env:"DECKSIM_LOG_LEVEL"`
	LogFormat     *string        `env:"DECKSIM_LOG_FORMAT"`
	WebAddr       *string        `env:"DECKSIM_WEB_ADDR"`
}

// Default returns the built-in configuration.
func Default() Config {
	rc := deckcode.DefaultConfig()
	cats := make([]Category, 0, len(rc.Categories))
	for _, c := range rc.Categories {
		cats = append(cats, Category{Field: c.Field, Supertype: c.Supertype.String(), Subtype: c.Subtype})
	}
	effects := make(Effects)
	for name, kind := range game.DefaultEffects() {
		effects[name] = string(kind)
	}
	g := gesture.DefaultConfig()
	return Config{
		Resolver: Resolver{
			BaseURL:    rc.BaseURL,
			DeckURL:    rc.DeckURL,
			NameVar:    rc.NameVar,
			ImageVar:   rc.ImageVar,
			AltNameVar: rc.AltNameVar,
			Categories: cats,
		},
		Session: Session{BenchCapacity: game.DefaultBenchCapacity},
		Gesture: Gesture{
			DragDelay:       g.DragDelay,
			ScrollThreshold: g.ScrollThreshold,
			LongDrag:        g.LongDrag,
		},
		Effects: effects,
		Logging: Logging{Level: "info", Format: "console"},
		Web:     Web{Addr: ":8080", TableTTL: 2 * time.Hour, EventKeep: 1024},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/decksim/config.yaml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "decksim", "config.yaml")
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		default:
			if err := Parse(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		if path != "" {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping values the document does not set.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// ApplyEnv copies any DECKSIM_* variables into cfg.
func (c *Config) ApplyEnv() error {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	set(&c.Resolver.BaseURL, o.BaseURL)
	set(&c.Resolver.DeckURL, o.DeckURL)
	set(&c.Session.BenchCapacity, o.BenchCapacity)
	set(&c.Session.Seed, o.Seed)
	set(&c.Gesture.DragDelay, o.DragDelay)
	set(&c.Gesture.LongDrag, o.LongDrag)
	set(&c.Logging.Level, o.LogLevel)
	set(&c.Logging.Format, o.LogFormat)
	set(&c.Web.Addr, o.WebAddr)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.ResolverConfig(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.EffectRegistry(); err != nil {
		errs = append(errs, err)
	}
	if n := c.Session.BenchCapacity; n < 1 || n > game.BenchSlots {
		errs = append(errs, fmt.Errorf("session.bench_capacity %d outside 1..%d", n, game.BenchSlots))
	}
	if c.Gesture.DragDelay < 0 || c.Gesture.LongDrag < 0 || c.Gesture.ScrollThreshold < 0 {
		errs = append(errs, errors.New("gesture timings must not be negative"))
	}
	if c.Web.TableTTL < 0 || c.Web.EventKeep < 0 {
		errs = append(errs, errors.New("web.table_ttl and web.event_keep must not be negative"))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not console or json", c.Logging.Format))
	}
	names := make(map[string]bool, len(c.Decks))
	for i, d := range c.Decks {
		switch {
		case d.Name == "":
			errs = append(errs, fmt.Errorf("decks[%d]: empty name", i))
		case names[d.Name]:
			errs = append(errs, fmt.Errorf("decks[%d]: duplicate name %q", i, d.Name))
		}
		names[d.Name] = true
		if !deckcode.ValidCode(d.Code) {
			errs = append(errs, fmt.Errorf("decks[%d]: invalid code %q", i, d.Code))
		}
	}
	return errors.Join(errs...)
}

// ResolverConfig converts the resolver section.
func (c Config) ResolverConfig() (deckcode.Config, error) {
	out := deckcode.Config{
		BaseURL:    c.Resolver.BaseURL,
		DeckURL:    c.Resolver.DeckURL,
		NameVar:    c.Resolver.NameVar,
		ImageVar:   c.Resolver.ImageVar,
		AltNameVar: c.Resolver.AltNameVar,
	}
	for i, cat := range c.Resolver.Categories {
		st, err := game.ParseSupertype(cat.Supertype)
		if err != nil {
			return deckcode.Config{}, fmt.Errorf("resolver.categories[%d]: %w", i, err)
		}
		out.Categories = append(out.Categories, deckcode.Category{Field: cat.Field, Supertype: st, Subtype: cat.Subtype})
	}
	if err := out.Validate(); err != nil {
		return deckcode.Config{}, fmt.Errorf("resolver: %w", err)
	}
	return out, nil
}

// EffectRegistry converts the effects section.
func (c Config) EffectRegistry() (game.EffectRegistry, error) {
	reg := make(game.EffectRegistry, len(c.Effects))
	for name, raw := range c.Effects {
		kind, err := game.ParseEffectKind(raw)
		if err != nil {
			return nil, fmt.Errorf("effects[%s]: %w", name, err)
		}
		reg[name] = kind
	}
	return reg, nil
}

// GestureConfig converts the gesture section.
func (c Config) GestureConfig() gesture.Config {
	return gesture.Config{
		DragDelay:       c.Gesture.DragDelay,
		ScrollThreshold: c.Gesture.ScrollThreshold,
		LongDrag:        c.Gesture.LongDrag,
	}
}

// TableConfig returns the settings a new practice table starts with. The
// caller adds its own event logger.
func (c Config) TableConfig() (game.TableConfig, error) {
	effects, err := c.EffectRegistry()
	if err != nil {
		return game.TableConfig{}, err
	}
	return game.TableConfig{
		Seed:          c.Session.Seed,
		BenchCapacity: c.Session.BenchCapacity,
		Effects:       effects,
	}, nil
}

// Deck looks up a saved deck by name.
func (c Config) Deck(name string) (SavedDeck, bool) {
	for _, d := range c.Decks {
		if d.Name == name {
			return d, true
		}
	}
	return SavedDeck{}, false
}
