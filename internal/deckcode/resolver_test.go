package deckcode

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/decksim/internal/game"
)

// page assembles a deck confirmation page from catalog lines and field markup.
func page(script string, body ...string) string {
	return "<html><head><script>\n" + script + "\n</script></head><body><form>" +
		strings.Join(body, "\n") + "</form></body></html>"
}

func hidden(field, value string) string {
	return fmt.Sprintf(`<input type="hidden" name="%s" id="%s" value="%s">`, field, field, value)
}

func TestResolveSingleCard(t *testing.T) {
	html := page(`
PCGDECK.searchItemName[5]='Pikachu';
PCGDECK.searchItemCardPict[5]='/img/5.png';`,
		hidden("deck_pke", "5_4_1"))

	cards, err := Resolve(html)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, game.Card{
		Name:      "Pikachu",
		ImageURL:  DefaultBaseURL + "/img/5.png",
		Quantity:  4,
		Supertype: game.SupertypeCreature,
	}, cards[0])
}

func TestResolveFullDeckInCategoryOrder(t *testing.T) {
	var script strings.Builder
	for id := 1; id <= 8; id++ {
		fmt.Fprintf(&script, "PCGDECK.searchItemName[%d]='card %d';\n", id, id)
		fmt.Fprintf(&script, "PCGDECK.searchItemCardPict[%d]=\"/img/%d.png\";\n", id, id)
	}
	// Fields deliberately out of category order in the markup.
	html := page(script.String(),
		hidden("deck_ene", "6_10_1"),
		hidden("deck_ajs", "8_2_1"),
		hidden("deck_pke", "1_12_1-2_4_2"),
		hidden("deck_gds", "3_14_1"),
		hidden("deck_tool", "4_4_1"),
		hidden("deck_sup", "5_10_1"),
		hidden("deck_sta", "7_4_1"),
		hidden("deck_tech", ""),
	)

	cards, err := Resolve(html)
	require.NoError(t, err)
	assert.Equal(t, game.DeckSizeRequired, game.DeckSize(cards))

	var order []string
	for _, c := range cards {
		order = append(order, c.Name)
	}
	assert.Equal(t, []string{"card 1", "card 2", "card 3", "card 4", "card 5", "card 7", "card 6", "card 8"}, order)

	assert.Equal(t, []string{game.SubtypeTool}, cards[3].Subtypes)
	assert.Equal(t, game.SupertypeEnergy, cards[6].Supertype)
	assert.Empty(t, cards[6].Subtypes)
	assert.Equal(t, []string{game.SubtypeItem}, cards[7].Subtypes)
}

func TestResolveAttributeOrder(t *testing.T) {
	script := `PCGDECK.searchItemName[1]='Judge';
PCGDECK.searchItemCardPict[1]='/judge.png';`

	tests := []struct {
		name   string
		markup string
	}{
		{"id first", `<input id="deck_sup" value="1_2_1">`},
		{"value first", `<input value="1_2_1" type="hidden" id="deck_sup">`},
		{"name only", `<input value='1_2_1' name="deck_sup"/>`},
		{"inside script text", `<script>document.write('<input value="1_2_1" id="deck_sup">');</script>`},
		{"inside script id first", `<script>var f = '<input id="deck_sup" type="hidden" value="1_2_1">';</script>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := Resolve(page(script, tt.markup))
			require.NoError(t, err)
			require.Len(t, cards, 1)
			assert.Equal(t, "Judge", cards[0].Name)
			assert.Equal(t, 2, cards[0].Quantity)
			assert.Equal(t, []string{game.SubtypeSupporter}, cards[0].Subtypes)
		})
	}
}

func TestResolveSkipsBadEntries(t *testing.T) {
	html := page(`
PCGDECK.searchItemName[5]='Pikachu';
PCGDECK.searchItemCardPict[5]='/img/5.png';
PCGDECK.searchItemName[9]='No Picture';`,
		hidden("deck_pke", "5_4_1-garbage-9_2_1-5_0_1-_3_1-5_x_2-5_1"))

	cards, err := Resolve(html)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 4, cards[0].Quantity)
}

func TestResolveSkipsEmptyImagePath(t *testing.T) {
	html := page(`
PCGDECK.searchItemName[5]='Pikachu';
PCGDECK.searchItemCardPict[5]='/img/5.png';
PCGDECK.searchItemName[7]='Blank Picture';
PCGDECK.searchItemCardPict[7]='';
PCGDECK.searchItemName[8]='Spaces Picture';
PCGDECK.searchItemCardPict[8]="  ";`,
		hidden("deck_pke", "7_3_1-5_4_1-8_1_1"))

	cards, err := Resolve(html)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Pikachu", cards[0].Name)
}

func TestResolveMissingFieldsAreEmpty(t *testing.T) {
	cards, err := Resolve(page(`PCGDECK.searchItemName[1]='Lonely';`))
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestResolvePrefersAltName(t *testing.T) {
	html := page(`
PCGDECK.searchItemName[5]='Pikachu ex';
PCGDECK.searchItemNameAlt[5]='ピカチュウex';
PCGDECK.searchItemCardPict[5]='https://cdn.example/5.png';`,
		hidden("deck_pke", "5_1_1"))

	cards, err := Resolve(html)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "ピカチュウex", cards[0].Name)
	assert.Equal(t, "https://cdn.example/5.png", cards[0].ImageURL, "absolute paths are kept")
}

func TestResolveCleansNames(t *testing.T) {
	html := page(`
PCGDECK.searchItemName[1]='Boss\'s Orders';
PCGDECK.searchItemName[ 2 ] = "Professor&#39;s Research";
PCGDECK.searchItemName[3]='Poke`+"\u0301"+`mon Catcher';
PCGDECK.searchItemCardPict[1]='/1.png';
PCGDECK.searchItemCardPict[2]='/2.png';
PCGDECK.searchItemCardPict[3]='/3.png';`,
		hidden("deck_sup", "1_1_1-2_1_2"),
		hidden("deck_gds", "3_1_1"))

	cards, err := Resolve(html)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "Pokémon Catcher", cards[0].Name)
	assert.Equal(t, "Boss's Orders", cards[1].Name)
	assert.Equal(t, "Professor's Research", cards[2].Name)
}

func TestResolveNoCatalog(t *testing.T) {
	_, err := Resolve("<html><body>deck not found</body></html>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCatalog)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "no card catalog")
}

func TestResolverCustomConfig(t *testing.T) {
	cfg := Config{
		BaseURL:  "https://example.test/",
		NameVar:  "DECK.names",
		ImageVar: "DECK.pics",
		Categories: []Category{
			{Field: "energy", Supertype: game.SupertypeEnergy},
		},
	}
	r, err := New(cfg)
	require.NoError(t, err)

	cards, err := r.Resolve(page(`DECK.names[3]='Fire';DECK.pics[3]='/f.png';`, hidden("energy", "3_7_1")))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "https://example.test/f.png", cards[0].ImageURL)
	assert.Equal(t, 7, cards[0].Quantity)

	// The default variables mean nothing to this layout.
	_, err = r.Resolve(page(`PCGDECK.searchItemName[3]='Fire';`))
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Categories: []Category{{Field: "a"}, {Field: "a"}, {}}})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "name variable is empty")
	assert.Contains(t, msg, "duplicate field")
	assert.Contains(t, msg, "empty field")
}

func TestParseEntries(t *testing.T) {
	got := parseEntries("12_3_1- 40_1_2 -x_1_1-7_-1_3")
	assert.Equal(t, []entry{{id: "12", quantity: 3, position: 1}, {id: "40", quantity: 1, position: 2}}, got)
	assert.Empty(t, parseEntries(""))
}

func TestResolveErrorsAreNotPanics(t *testing.T) {
	for _, html := range []string{"", "<", "<input id=", "PCGDECK.searchItemName[1]='x", "\x00\xff"} {
		assert.NotPanics(t, func() { _, _ = Resolve(html) })
	}
	assert.True(t, errors.Is(&ParseError{Err: ErrNoCatalog}, ErrNoCatalog))
}
