package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/decksim/internal/game"
	"github.com/peterkuimelis/decksim/internal/log"
	decknet "github.com/peterkuimelis/decksim/internal/net"
)

var (
	playSelf     string
	playOpponent string
	playLog      string
)

// playCmd deals a table and runs the terminal controls on stdin.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice a deck in the terminal",
	Long: `Play deals --self (and optionally --opponent) onto a practice table. Each deck is
a saved deck name from the config, a file holding a deck page, or a deck code.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if playSelf == "" {
			return errors.New("--self is required")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loader, err := newLoader(cfg)
		if err != nil {
			return err
		}
		load := func(arg string) ([]game.Card, error) {
			src, err := deckSource(cfg, arg)
			if err != nil {
				return nil, err
			}
			return loader.Load(ctx, src)
		}

		self, err := load(playSelf)
		if err != nil {
			return fmt.Errorf("self deck: %w", err)
		}
		var opponent []game.Card
		if playOpponent != "" {
			if opponent, err = load(playOpponent); err != nil {
				return fmt.Errorf("opponent deck: %w", err)
			}
		}

		tc, err := cfg.TableConfig()
		if err != nil {
			return err
		}
		tc.Logger = log.NewMemoryLogger()
		if playLog != "" {
			f, err := os.Create(playLog)
			if err != nil {
				return fmt.Errorf("open event log: %w", err)
			}
			defer f.Close()
			tc.Logger = log.NewTextLogger(f)
		}

		table, err := game.NewTable(self, opponent, tc)
		if err != nil {
			return err
		}
		defer table.Close()

		err = decknet.RunREPL(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), table)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	playCmd.Flags().StringVar(&playSelf, "self", "", "your deck: saved name, deck page file or code")
	playCmd.Flags().StringVar(&playOpponent, "opponent", "", "opponent deck, same forms as --self")
	playCmd.Flags().StringVar(&playLog, "log", "", "also write every practice event to this file")
}
