package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// colorStop is a parsed gradient stop
type colorStop struct {
	offset float64
	color  colorful.Color
}

// LinearGradient is an image.Image whose color varies along the line from
// (X0, Y0) to (X1, Y1). Points are projected onto that line; before the
// first stop the first color is used and after the last stop the last one.
type LinearGradient struct {
	X0, Y0 float64
	X1, Y1 float64

	bounds image.Rectangle
	stops  []colorStop
}

// NewLinearGradient creates a gradient over bounds with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64, bounds image.Rectangle) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1, bounds: bounds}
}

// AddColorStop adds a stop at offset (0..1) with a hex color such as "#ff0000".
func (g *LinearGradient) AddColorStop(offset float64, hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("invalid gradient color %q: %w", hex, err)
	}
	g.stops = append(g.stops, colorStop{offset: offset, color: c})
	// Stable so that equal offsets keep insertion order
	sort.SliceStable(g.stops, func(i, j int) bool {
		return g.stops[i].offset < g.stops[j].offset
	})
	return nil
}

// ColorModel implements image.Image.
func (g *LinearGradient) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (g *LinearGradient) Bounds() image.Rectangle {
	return g.bounds
}

// At implements image.Image, sampling at the pixel center.
func (g *LinearGradient) At(x, y int) color.Color {
	return g.ColorAt(float64(x)+0.5, float64(y)+0.5)
}

// ColorAt returns the opaque gradient color at point (x, y).
func (g *LinearGradient) ColorAt(x, y float64) color.RGBA {
	if len(g.stops) == 0 {
		return color.RGBA{}
	}

	dx := g.X1 - g.X0
	dy := g.Y1 - g.Y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return toRGBA(g.stops[0].color)
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / lenSq

	first := g.stops[0]
	if t <= first.offset {
		return toRGBA(first.color)
	}
	last := g.stops[len(g.stops)-1]
	if t >= last.offset {
		return toRGBA(last.color)
	}

	for i := 1; i < len(g.stops); i++ {
		hi := g.stops[i]
		if t > hi.offset {
			continue
		}
		lo := g.stops[i-1]
		span := hi.offset - lo.offset
		if span <= 0 {
			return toRGBA(hi.color)
		}
		return toRGBA(lo.color.BlendRgb(hi.color, (t-lo.offset)/span))
	}
	return toRGBA(last.color)
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
