package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/decksim/internal/config"
	"github.com/peterkuimelis/decksim/internal/log"
	"github.com/peterkuimelis/decksim/internal/web"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config YAML")
	addr := flag.String("addr", "", "listen address (overrides web.addr)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Web.Addr = *addr
	}

	logger, err := log.NewZap(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting decksim web",
		zap.String("config", *configPath),
		zap.String("addr", cfg.Web.Addr),
		zap.Int("saved_decks", len(cfg.Decks)),
	)

	srv, err := web.NewServer(cfg, nil, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, cfg.Web.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
