// Package software implements the render interfaces on the CPU with
// image.RGBA surfaces and x/image glyph rasterization. It needs no window or
// GPU, which makes it the backend for headless snapshots, the terminal host
// and tests.
package software

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"chosenoffset.com/textparticles/internal/render"
)

// Renderer implements render.Renderer on image.RGBA surfaces.
type Renderer struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewRenderer creates a software renderer using the given TTF/OTF data.
func NewRenderer(fontData []byte) (*Renderer, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Renderer{
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// face returns a cached face for the pixel size. Sizes the font cannot be
// scaled to fall back to the fixed 7x13 bitmap face.
func (r *Renderer) face(size float64) font.Face {
	if f, ok := r.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		log.Printf("Warning: failed to create %gpx face, using bitmap font: %v", size, err)
		f = basicfont.Face7x13
	}
	r.faces[size] = f
	return f
}

// NewImage creates a transparent surface with the given dimensions.
func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

// MeasureText returns the advance width of str in pixels.
func (r *Renderer) MeasureText(str string, size float64) float64 {
	if str == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(r.face(size), str))
}

// DrawText draws str centered on (x, y) with glyph coverage taken from fill.
func (r *Renderer) DrawText(dst render.Image, str string, x, y, size float64, fill image.Image) {
	if str == "" {
		return
	}
	img := dst.(*Image).img
	face := r.face(size)

	width := fixedToFloat(font.MeasureString(face, str))
	m := face.Metrics()
	baseline := y + (fixedToFloat(m.Ascent)-fixedToFloat(m.Descent))/2

	d := &font.Drawer{
		Dst:  img,
		Src:  fill,
		Face: face,
		Dot: fixed.Point26_6{
			X: floatToFixed(x - width/2),
			Y: floatToFixed(baseline),
		},
	}
	d.DrawString(str)
}

// Image wraps an *image.RGBA to implement render.Image.
type Image struct {
	img *image.RGBA
}

// NewImage creates a transparent software surface.
func NewImage(width, height int) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Image{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *Image) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *Image) Fill(clr color.Color) {
	draw.Draw(i.img, i.img.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// Clear clears the image to transparent.
func (i *Image) Clear() {
	clear(i.img.Pix)
}

// FillRect paints a rectangle, snapping its edges to whole pixels.
func (i *Image) FillRect(x, y, width, height float64, clr color.Color) {
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+width)), int(math.Round(y+height)),
	).Intersect(i.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(i.img, r, image.NewUniform(clr), image.Point{}, draw.Over)
}

// ReadPixels copies the premultiplied RGBA contents into buf.
func (i *Image) ReadPixels(buf []byte) {
	w, h := i.Size()
	row := 4 * w
	for y := 0; y < h; y++ {
		src := i.img.Pix[y*i.img.Stride : y*i.img.Stride+row]
		copy(buf[y*row:(y+1)*row], src)
	}
}

// Dispose releases the pixel memory.
func (i *Image) Dispose() {
	i.img = image.NewRGBA(image.Rectangle{})
}

// RGBA returns the underlying image for encoding or presentation.
func (i *Image) RGBA() *image.RGBA {
	return i.img
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
