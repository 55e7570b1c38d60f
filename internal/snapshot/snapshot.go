// Package snapshot renders the text effect headlessly and writes the frames
// as PNG files, optionally with a contact sheet of every written frame.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"chosenoffset.com/textparticles/internal/effect"
	"chosenoffset.com/textparticles/internal/render/software"
)

// Background is the backdrop frames are composited onto
var Background = color.RGBA{30, 28, 25, 255}

// Options controls a snapshot run
type Options struct {
	Text   string
	Frames int    // Ticks to simulate
	Every  int    // Write every Nth tick (the last tick is always written)
	OutDir string // Created if missing
	Sweep  bool   // Drag the pointer across the middle of the surface

	// SheetColumns > 0 also writes sheet.png with thumbnails of every frame
	SheetColumns int
	ThumbWidth   int
}

// Render drives ctrl for opts.Frames ticks on a width x height software
// surface and returns the paths of the written frames.
func Render(ctrl *effect.Controller, width, height int, opts Options) ([]string, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if opts.Frames <= 0 {
		return nil, errors.New("frames must be positive")
	}
	every := max(opts.Every, 1)

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ctrl.Resize(width, height)
	ctrl.SubmitText(opts.Text)

	screen := software.NewImage(width, height)
	var paths []string
	var thumbs []*image.RGBA

	for frame := 1; frame <= opts.Frames; frame++ {
		if opts.Sweep {
			x := float64(width) * float64(frame) / float64(opts.Frames)
			ctrl.SetPointer(x, float64(height)/2)
		}
		ctrl.Tick(screen)

		if frame%every != 0 && frame != opts.Frames {
			continue
		}

		composed := Compose(screen.RGBA(), Background)
		path := filepath.Join(opts.OutDir, fmt.Sprintf("frame_%04d.png", frame))
		if err := SavePNG(composed, path); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)

		if opts.SheetColumns > 0 {
			thumbs = append(thumbs, Thumbnail(composed, opts.ThumbWidth))
		}
	}

	if opts.SheetColumns > 0 {
		sheet := CreateSheet(thumbs, opts.SheetColumns)
		if err := SavePNG(sheet, filepath.Join(opts.OutDir, "sheet.png")); err != nil {
			return paths, fmt.Errorf("failed to write contact sheet: %w", err)
		}
	}

	return paths, nil
}

// Compose draws frame over an opaque background
func Compose(frame *image.RGBA, bg color.RGBA) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	draw.Draw(out, out.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), frame, frame.Bounds().Min, draw.Over)
	return out
}

// Thumbnail scales img to width, keeping its aspect ratio
func Thumbnail(img *image.RGBA, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || width >= b.Dx() {
		return img
	}
	height := max(b.Dy()*width/b.Dx(), 1)
	thumb := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, b, draw.Src, nil)
	return thumb
}

// CreateSheet lays equally sized frames out in a grid
func CreateSheet(frames []*image.RGBA, columns int) *image.RGBA {
	if len(frames) == 0 || columns <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	cellW := frames[0].Bounds().Dx()
	cellH := frames[0].Bounds().Dy()
	rows := (len(frames) + columns - 1) / columns

	sheet := image.NewRGBA(image.Rect(0, 0, min(columns, len(frames))*cellW, rows*cellH))

	// Copy each frame into the sheet
	for i, frame := range frames {
		col := i % columns
		row := i / columns

		x := col * cellW
		y := row * cellH

		destRect := image.Rect(x, y, x+cellW, y+cellH)
		draw.Draw(sheet, destRect, frame, frame.Bounds().Min, draw.Src)
	}

	return sheet
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
