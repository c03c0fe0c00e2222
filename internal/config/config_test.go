package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/decksim/internal/deckcode"
	"github.com/peterkuimelis/decksim/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decksim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultMatchesPackages(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	rc, err := cfg.ResolverConfig()
	require.NoError(t, err)
	assert.Equal(t, deckcode.DefaultConfig(), rc)

	reg, err := cfg.EffectRegistry()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultEffects(), reg)

	assert.Equal(t, 200*time.Millisecond, cfg.GestureConfig().DragDelay)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
session:
  bench_capacity: 8
  seed: 1234
gesture:
  drag_delay: 150ms
  scroll_threshold: 12
  long_drag: 1s
effects:
  Professor's Research: reshuffle_draw_four
decks:
  - name: lost box
    code: gnnLLQ-dQ3ZFi-LgQ9gn
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Session.BenchCapacity)
	assert.Equal(t, uint64(1234), cfg.Session.Seed)
	assert.Equal(t, 150*time.Millisecond, cfg.Gesture.DragDelay)
	assert.Equal(t, time.Second, cfg.Gesture.LongDrag)
	assert.Equal(t, "json", cfg.Logging.Format)

	reg, err := cfg.EffectRegistry()
	require.NoError(t, err)
	assert.Equal(t, game.EffectRegistry{"Professor's Research": game.EffectReshuffleDrawFour}, reg,
		"an effects section replaces the built-in table")

	d, ok := cfg.Deck("lost box")
	require.True(t, ok)
	assert.Equal(t, "gnnLLQ-dQ3ZFi-LgQ9gn", d.Code)

	// Untouched sections keep their defaults.
	assert.Equal(t, deckcode.DefaultBaseURL, cfg.Resolver.BaseURL)
	assert.Len(t, cfg.Resolver.Categories, 8)

	tc, err := cfg.TableConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, tc.BenchCapacity)
	assert.Equal(t, uint64(1234), tc.Seed)
}

func TestLoadCustomCategories(t *testing.T) {
	path := writeConfig(t, `
resolver:
  base_url: https://mirror.example
  categories:
    - field: mons
      supertype: Creature
    - field: gear
      supertype: Trainer
      subtype: Item
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	rc, err := cfg.ResolverConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example", rc.BaseURL)
	assert.Equal(t, "PCGDECK.searchItemName", rc.NameVar)
	assert.Equal(t, []deckcode.Category{
		{Field: "mons", Supertype: game.SupertypeCreature},
		{Field: "gear", Supertype: game.SupertypeTrainer, Subtype: game.SubtypeItem},
	}, rc.Categories)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "session:\n  bench_capacity: 6\nweb:\n  addr: :9000\n")
	t.Setenv("DECKSIM_BENCH_CAPACITY", "7")
	t.Setenv("DECKSIM_LONG_DRAG", "750ms")
	t.Setenv("DECKSIM_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Session.BenchCapacity)
	assert.Equal(t, 750*time.Millisecond, cfg.Gesture.LongDrag)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, ":9000", cfg.Web.Addr, "unset variables keep file values")
}

func TestEnvBadValue(t *testing.T) {
	t.Setenv("DECKSIM_SEED", "not-a-number")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestValidateCollectsErrors(t *testing.T) {
	path := writeConfig(t, `
session:
  bench_capacity: 12
effects:
  Judge: draw_seven
resolver:
  categories:
    - field: mons
      supertype: Wizard
decks:
  - name: a
    code: ../../etc
  - name: a
    code: ok-code
logging:
  format: xml
web:
  table_ttl: -1s
`)
	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, path)
	for _, want := range []string{
		"bench_capacity 12",
		`unknown effect "draw_seven"`,
		`unknown supertype "Wizard"`,
		`invalid code "../../etc"`,
		`duplicate name "a"`,
		`"xml"`,
		"web.table_ttl",
	} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "session: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode yaml")
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "decksim.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Decks)
}

func TestParseEffectsSection(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want game.EffectRegistry
	}{
		{"omitted keeps defaults", "session:\n  seed: 1\n", game.DefaultEffects()},
		{"empty map clears", "effects: {}\n", game.EffectRegistry{}},
		{"replaces", "effects:\n  Judge: reshuffle_draw_prize_count\n", game.EffectRegistry{"Judge": game.EffectReshuffleDrawToPrizeCount}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, Parse([]byte(tt.doc), &cfg))
			reg, err := cfg.EffectRegistry()
			require.NoError(t, err)
			assert.Equal(t, tt.want, reg)
		})
	}
}
