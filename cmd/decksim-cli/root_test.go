package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/decksim/internal/config"
	"github.com/peterkuimelis/decksim/internal/deckcode"
)

func TestDeckSource(t *testing.T) {
	cfg := config.Default()
	cfg.Decks = []config.SavedDeck{{Name: "sample", Code: "gnnLLQ-dQ3ZFi-LgQ9gn"}}

	page := filepath.Join(t.TempDir(), "deck.html")
	require.NoError(t, os.WriteFile(page, []byte("<html>deck</html>"), 0o644))

	tests := []struct {
		arg  string
		want deckcode.Source
	}{
		{"sample", deckcode.Source{Code: "gnnLLQ-dQ3ZFi-LgQ9gn"}},
		{page, deckcode.Source{HTML: "<html>deck</html>"}},
		{"abc-123", deckcode.Source{Code: "abc-123"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := deckSource(cfg, tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
