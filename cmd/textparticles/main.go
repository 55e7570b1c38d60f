package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"chosenoffset.com/textparticles/internal/app"
	"chosenoffset.com/textparticles/internal/config"
	"chosenoffset.com/textparticles/internal/effect"
	"chosenoffset.com/textparticles/internal/render"
	ebitenrender "chosenoffset.com/textparticles/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "textparticles.yaml", "path to the YAML config file")
	text := flag.String("text", "", "initial text (overrides the config)")
	width := flag.Int("width", 0, "window width (overrides the config)")
	height := flag.Int("height", 0, "window height (overrides the config)")
	seed := flag.Int64("seed", 0, "random seed (overrides the config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *text != "" {
		cfg.Text.Initial = *text
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	fontData, err := render.LoadFontData(cfg.Text.FontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer(fontData)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log.Printf("Using seed %d", cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	ctrl := effect.NewController(renderer, cfg, rng)
	game := app.NewGame(renderer, inputMgr, ctrl, cfg, cfg.Window.Width, cfg.Window.Height)

	// Set up the window
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)

	log.Println("Starting text particles...")
	if err := engine.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
