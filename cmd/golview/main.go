//go:build ebiten

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
	"github.com/hajimehoshi/ebiten/v2"

	"gol-miner/internal/app"
	"gol-miner/internal/logging"
)

func main() {
	cfg, err := app.Load("golview", os.Args[1:], os.Stderr)
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
	l.Init()

	done := make(chan error, 1)
	go func() {
		_, err := l.Run(ctx)
		done <- err
	}()

	ebiten.SetWindowTitle("gol-miner — " + l.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Size*cfg.Scale, cfg.Size*cfg.Scale)

	if err := ebiten.RunGame(app.NewViewer(l, cfg.Scale)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("viewer failed")
	}
	stop()
	if err := <-done; err != nil {
		log.Error().Err(err).Msg("simulation failed")
		os.Exit(1)
	}
}
