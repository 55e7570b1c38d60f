package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"chosenoffset.com/textparticles/internal/config"
	"chosenoffset.com/textparticles/internal/effect"
	"chosenoffset.com/textparticles/internal/render"
	"chosenoffset.com/textparticles/internal/render/software"
	"chosenoffset.com/textparticles/internal/snapshot"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	text := flag.String("text", "Hello particles", "text to render")
	width := flag.Int("width", 640, "surface width")
	height := flag.Int("height", 320, "surface height")
	frames := flag.Int("frames", 240, "ticks to simulate")
	every := flag.Int("every", 30, "write every Nth tick")
	out := flag.String("out", "frames", "output directory")
	seed := flag.Int64("seed", 1, "random seed")
	sweep := flag.Bool("sweep", false, "drag the pointer across the text")
	sheet := flag.Int("sheet", 0, "also write sheet.png with this many columns")
	flag.Parse()

	fmt.Println("Text Particles Snapshot")
	fmt.Println("=======================")
	fmt.Println()

	if err := run(*configPath, *width, *height, *seed, snapshot.Options{
		Text:         *text,
		Frames:       *frames,
		Every:        *every,
		OutDir:       *out,
		Sweep:        *sweep,
		SheetColumns: *sheet,
		ThumbWidth:   *width / 4,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, width, height int, seed int64, opts snapshot.Options) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.Seed = seed

	fontData, err := render.LoadFontData(cfg.Text.FontPath)
	if err != nil {
		return err
	}
	renderer, err := software.NewRenderer(fontData)
	if err != nil {
		return err
	}

	ctrl := effect.NewController(renderer, cfg, rand.New(rand.NewSource(cfg.Seed)))
	paths, err := snapshot.Render(ctrl, width, height, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Rendered %q as %d particles\n", opts.Text, ctrl.Field().Len())
	for _, path := range paths {
		fmt.Printf("  Saved: %s\n", path)
	}
	if opts.SheetColumns > 0 {
		fmt.Println("  Saved contact sheet: sheet.png")
	}
	fmt.Println()
	fmt.Println("Done!")
	return nil
}
