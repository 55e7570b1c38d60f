package main

import (
	"flag"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/textparticles/internal/app"
	"chosenoffset.com/textparticles/internal/config"
	"chosenoffset.com/textparticles/internal/effect"
	"chosenoffset.com/textparticles/internal/render"
	"chosenoffset.com/textparticles/internal/render/software"
	"chosenoffset.com/textparticles/internal/render/terminal"
)

func main() {
	configPath := flag.String("config", "textparticles.yaml", "path to the YAML config file")
	text := flag.String("text", "", "initial text (overrides the config)")
	fontSize := flag.Float64("size", 24, "font size in surface pixels (one pixel per cell column)")
	gap := flag.Int("gap", 1, "sampling gap")
	radius := flag.Float64("radius", 300, "pointer radius")
	seed := flag.Int64("seed", 0, "random seed (overrides the config)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	// The terminal owns stdout and stderr while running
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *text != "" {
		cfg.Text.Initial = *text
	}
	cfg.Text.FontSize = *fontSize
	cfg.Particles.Gap = *gap
	cfg.Pointer.Radius = *radius
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Invalid settings: %v", err)
	}

	fontData, err := render.LoadFontData(cfg.Text.FontPath)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to load font: %v", err)
	}
	renderer, err := software.NewRenderer(fontData)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to create renderer: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Failed to open terminal: %v", err)
	}
	engine := terminal.NewEngine(screen)

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	ctrl := effect.NewController(renderer, cfg, rng)
	game := app.NewGame(renderer, engine.Input(), ctrl, cfg, 0, 0)
	game.HUD = false
	engine.SetStatus(game.StatusLine)

	if err := engine.RunGame(game); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
