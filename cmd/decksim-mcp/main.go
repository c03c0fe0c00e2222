package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/decksim/internal/config"
	decksimmcp "github.com/peterkuimelis/decksim/internal/mcp"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config YAML")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	practice, err := decksimmcp.NewPractice(cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer practice.Close()

	s := server.NewMCPServer("decksim", "1.0.0")
	decksimmcp.RegisterTools(s, practice)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
