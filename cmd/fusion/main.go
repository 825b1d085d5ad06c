//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mad-fusion/internal/app"
	"mad-fusion/internal/core"
	_ "mad-fusion/internal/sims/fusion"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %v)", cfg.Sim, core.SimNames())
	}
	sim, err := factory(cfg.SimConfig())
	if err != nil {
		log.Fatalf("%s: %v", cfg.Sim, err)
	}
	scene, ok := sim.(core.Scene)
	if !ok {
		log.Fatalf("%s cannot be rendered", cfg.Sim)
	}

	game := app.New(scene, cfg)
	if err := game.Start(); err != nil {
		log.Fatalf("start: %v", err)
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("mad-fusion - " + sim.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
