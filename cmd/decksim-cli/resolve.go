package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/decksim/internal/deckcode"
	"github.com/peterkuimelis/decksim/internal/game"
)

var (
	resolveCode string
	resolveFile string
)

// resolveCmd prints the deck list behind a code or a saved page.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the deck list for a deck code or a saved deck page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var src deckcode.Source
		switch {
		case resolveFile != "":
			data, err := os.ReadFile(resolveFile)
			if err != nil {
				return fmt.Errorf("read deck page: %w", err)
			}
			src.HTML = string(data)
		case resolveCode != "":
			src.Code = resolveCode
		default:
			return errors.New("one of --code or --file is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}
		cards, err := loader.Load(cmd.Context(), src)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, c := range cards {
			fmt.Fprintf(out, "%2d  %-28s %-8s %s\n", c.Quantity, c.Name, c.Supertype, c.ImageURL)
		}
		total := game.DeckSize(cards)
		fmt.Fprintf(out, "total %d\n", total)
		if total != game.DeckSizeRequired {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d cards, a practice table needs %d\n", total, game.DeckSizeRequired)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveCode, "code", "", "deck code from the deck builder")
	resolveCmd.Flags().StringVar(&resolveFile, "file", "", "saved HTML of a deck page")
	resolveCmd.MarkFlagsMutuallyExclusive("code", "file")
}
