package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"gol-miner/internal/app"
	"gol-miner/internal/logging"
)

func main() {
	cfg, err := app.Load("golminer", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := app.Build(ctx, cfg, log, runID, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("setup failed")
	}

	stats, err := l.Run(ctx)
	if ctx.Err() != nil {
		fmt.Println("Exiting...")
	}
	if err != nil {
		log.Error().Err(err).Int("ticks", stats.Ticks).Msg("simulation failed")
		os.Exit(1)
	}
}
