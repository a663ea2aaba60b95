package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"bullethell/internal/config"
	"bullethell/internal/game"
	"bullethell/internal/termview"

	"github.com/gdamore/tcell/v2"
)

var (
	configFlag = flag.String("config", "config.yaml", "Path to the config file")
	shipFlag   = flag.Int("ship", -1, "Only simulate the ship at this index (-1 for all)")
	soundFlag  = flag.Bool("sound", false, "Beep on pattern changes (overrides terminal.sound)")
	logFlag    = flag.String("log", "", "Write log output to this file while the terminal is in use")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *shipFlag >= 0 {
		if *shipFlag >= len(cfg.Ships) {
			fmt.Fprintf(os.Stderr, "ship %d out of range, config has %d ships\n", *shipFlag, len(cfg.Ships))
			os.Exit(1)
		}
		ship := cfg.Ships[*shipFlag]
		// keep per-ship shooting settings when narrowing down
		ship.CameraOrder = 0
		cfg.Ships = []config.ShipConfig{ship}
	}

	g, err := game.NewBulletHellGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	var beeper termview.Beeper
	if cfg.Terminal.Sound || *soundFlag {
		if b, err := termview.NewSpeakerBeeper(); err != nil {
			log.Printf("Warning: sound disabled: %v", err)
		} else {
			beeper = b
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	// log lines would scribble over the screen
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	viewer := termview.New(screen, g, cfg.Terminal, beeper)
	if err := viewer.Run(ctx, events); err != nil {
		log.Printf("Error: %v", err)
	}
}
