package render

import (
	"image"
	"image/color"
	"testing"
)

func newTestGradient(t *testing.T) *LinearGradient {
	t.Helper()
	g := NewLinearGradient(0, 0, 100, 100, image.Rect(0, 0, 100, 100))
	// Added out of order on purpose
	for _, stop := range []struct {
		offset float64
		hex    string
	}{
		{0.5, "#0000ff"},
		{0.3, "#ff0000"},
		{0.7, "#800080"},
	} {
		if err := g.AddColorStop(stop.offset, stop.hex); err != nil {
			t.Fatalf("AddColorStop(%g, %s) failed: %v", stop.offset, stop.hex, err)
		}
	}
	return g
}

func TestLinearGradientStops(t *testing.T) {
	g := newTestGradient(t)

	tests := []struct {
		name string
		x, y float64
		want color.RGBA
	}{
		{"before first stop", 0, 0, color.RGBA{255, 0, 0, 255}},
		{"on first stop", 30, 30, color.RGBA{255, 0, 0, 255}},
		{"on middle stop", 50, 50, color.RGBA{0, 0, 255, 255}},
		{"between red and blue", 35, 35, color.RGBA{191, 0, 64, 255}},
		{"after last stop", 100, 100, color.RGBA{128, 0, 128, 255}},
		{"projected onto diagonal", 100, 0, color.RGBA{0, 0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.ColorAt(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("Expected %v at (%g, %g), got %v", tt.want, tt.x, tt.y, got)
			}
		})
	}
}

func TestLinearGradientImage(t *testing.T) {
	g := newTestGradient(t)

	if g.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Errorf("Expected bounds 100x100, got %v", g.Bounds())
	}
	r, _, _, a := g.At(0, 0).RGBA()
	if r != 0xffff || a != 0xffff {
		t.Errorf("Expected opaque red at origin, got r=%d a=%d", r, a)
	}
}

func TestLinearGradientDegenerate(t *testing.T) {
	empty := NewLinearGradient(0, 0, 10, 10, image.Rect(0, 0, 10, 10))
	if got := empty.ColorAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("Expected transparent without stops, got %v", got)
	}

	point := NewLinearGradient(5, 5, 5, 5, image.Rect(0, 0, 10, 10))
	if err := point.AddColorStop(0.5, "#00ff00"); err != nil {
		t.Fatalf("AddColorStop failed: %v", err)
	}
	if got := point.ColorAt(1, 9); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("Expected first stop color for zero-length gradient, got %v", got)
	}

	if err := point.AddColorStop(0.1, "green"); err == nil {
		t.Error("Expected error for non-hex color")
	}
}
