package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"mad-fusion/internal/app"
	"mad-fusion/internal/core"
	_ "mad-fusion/internal/sims/fusion"
	"mad-fusion/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	volume := flag.Float64("volume", 0.4, "cue volume (0 mutes)")
	logFile := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()
	if err := cfg.LoadEnv(); err != nil {
		log.Fatal(err)
	}

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
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

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if *logFile == "" {
		// Anything printed while the screen is active would corrupt it.
		log.SetOutput(io.Discard)
	}

	var sound *term.Sound
	if *volume > 0 {
		if sound, err = term.OpenSound(*volume); err != nil {
			log.Printf("audio disabled: %v", err)
			sound = nil
		}
	}

	viewer := term.NewViewer(screen, scene, core.SystemClock{}, cfg.TPS, cfg.Seed, sound)
	if _, err := viewer.Session().Apply(app.CmdStart); err != nil {
		log.Printf("start: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = viewer.Run(ctx)
	stop()
	sound.Close()
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fusion-term: %v\n", err)
		os.Exit(1)
	}
}
