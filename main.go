// roguecore runs the simulation demo in the local terminal.
//
// Usage:
//
//	roguecore [-config sim.yaml] [-map level.txt | -generate] [-seed 42] [-log roguecore.log]
//
// Arrow keys or hjklyubn walk one cell, '.' waits, ',' picks up what lies
// underfoot, a mouse click walks to the clicked cell and q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"roguecore/internal/config"
	"roguecore/internal/game"
	"roguecore/internal/logging"
	"roguecore/internal/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	mapPath := flag.String("map", "", "text layout file (a built-in map when empty)")
	seed := flag.Int64("seed", 0, "rng seed, overrides the config when non-zero")
	logPath := flag.String("log", "", "write diagnostics to this file")
	generated := flag.Bool("generate", false, "play a procedurally generated level")
	emoji := flag.Bool("emoji", false, "draw terrain with emoji")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// The screen owns stdout, so diagnostics go to a file or nowhere.
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		return err
	}

	s, err := game.Build(cfg, game.Source{MapPath: *mapPath, Generated: *generated}, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	theme := render.ASCII
	if *emoji {
		theme = render.Emoji
	}
	return game.New(screen, s, theme, logger).Run(context.Background())
}
