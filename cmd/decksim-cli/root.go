package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/decksim/internal/config"
	"github.com/peterkuimelis/decksim/internal/deckcode"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "decksim",
	Short: "Solo practice table for the card game",
	Long: `decksim resolves deck codes from the official deck builder and deals them onto
a practice table you drive from the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config YAML")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(playCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func newLoader(cfg config.Config) (*deckcode.Loader, error) {
	rc, err := cfg.ResolverConfig()
	if err != nil {
		return nil, err
	}
	return deckcode.NewLoader(rc)
}

// deckSource treats arg as a saved deck name, then a file of page HTML,
// then a deck code.
func deckSource(cfg config.Config, arg string) (deckcode.Source, error) {
	if d, ok := cfg.Deck(arg); ok {
		return deckcode.Source{Code: d.Code}, nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return deckcode.Source{}, fmt.Errorf("read deck page: %w", err)
		}
		return deckcode.Source{HTML: string(data)}, nil
	}
	return deckcode.Source{Code: arg}, nil
}
