//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"epi-ca/internal/app"
	"epi-ca/internal/sims/epidemic"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	sim, err := epidemic.New(cfg.Sim, epidemic.WithLogger(logger))
	if err != nil {
		log.Fatalf("configure epidemic: %v", err)
	}

	game := app.New(sim, cfg.Scale, cfg.Sim.Seed, logger)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("epi-ca — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
