package effect

import (
	"image/color"

	"chosenoffset.com/textparticles/internal/particle"
)

// SampleBuffer scans a premultiplied RGBA buffer of width x height pixels on
// a grid with the given gap, row by row. Every grid pixel with non-zero
// alpha yields a sample carrying that pixel's straight RGB color.
func SampleBuffer(pix []byte, width, height, gap int) []particle.Sample {
	if gap < 1 || width <= 0 || height <= 0 || len(pix) < 4*width*height {
		return nil
	}

	var samples []particle.Sample
	for y := 0; y < height; y += gap {
		for x := 0; x < width; x += gap {
			idx := (y*width + x) * 4
			alpha := pix[idx+3]
			if alpha == 0 {
				continue
			}
			samples = append(samples, particle.Sample{
				X:     x,
				Y:     y,
				Color: unpremultiply(pix[idx], pix[idx+1], pix[idx+2], alpha),
			})
		}
	}
	return samples
}

// unpremultiply recovers the straight color of an anti-aliased edge pixel,
// drawn opaque as a particle.
func unpremultiply(r, g, b, a uint8) color.RGBA {
	if a == 255 {
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	scale := func(c uint8) uint8 {
		v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
		return uint8(min(v, 255))
	}
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: 255}
}
