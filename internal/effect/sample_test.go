package effect

import (
	"image/color"
	"testing"
)

func TestSampleBufferSinglePixel(t *testing.T) {
	const width, height = 30, 20
	pix := make([]byte, 4*width*height)
	idx := (6*width + 9) * 4
	copy(pix[idx:], []byte{200, 100, 50, 255})

	samples := SampleBuffer(pix, width, height, 3)

	if len(samples) != 1 {
		t.Fatalf("Expected exactly 1 sample, got %d", len(samples))
	}
	s := samples[0]
	if s.X != 9 || s.Y != 6 {
		t.Errorf("Expected sample at (9, 6), got (%d, %d)", s.X, s.Y)
	}
	if s.Color != (color.RGBA{200, 100, 50, 255}) {
		t.Errorf("Expected color {200 100 50 255}, got %v", s.Color)
	}
}

func TestSampleBufferSkipsOffGridPixels(t *testing.T) {
	const width, height = 30, 20
	pix := make([]byte, 4*width*height)
	idx := (7*width + 10) * 4
	copy(pix[idx:], []byte{255, 255, 255, 255})

	if samples := SampleBuffer(pix, width, height, 3); len(samples) != 0 {
		t.Errorf("Expected off-grid pixel to be ignored, got %d samples", len(samples))
	}
}

func TestSampleBufferOrderAndPremultiplied(t *testing.T) {
	const width, height = 6, 6
	pix := make([]byte, 4*width*height)
	set := func(x, y int, px []byte) { copy(pix[(y*width+x)*4:], px) }
	set(3, 3, []byte{10, 10, 10, 255})
	set(0, 3, []byte{64, 0, 32, 128}) // premultiplied half-alpha
	set(3, 0, []byte{0, 0, 255, 255})

	samples := SampleBuffer(pix, width, height, 3)
	if len(samples) != 3 {
		t.Fatalf("Expected 3 samples, got %d", len(samples))
	}

	// Row-major order
	wantPos := [][2]int{{3, 0}, {0, 3}, {3, 3}}
	for i, p := range wantPos {
		if samples[i].X != p[0] || samples[i].Y != p[1] {
			t.Errorf("Sample %d: expected (%d, %d), got (%d, %d)", i, p[0], p[1], samples[i].X, samples[i].Y)
		}
	}

	if got := samples[1].Color; got != (color.RGBA{128, 0, 64, 255}) {
		t.Errorf("Expected straight color {128 0 64 255}, got %v", got)
	}
}

func TestSampleBufferDegenerateInput(t *testing.T) {
	if got := SampleBuffer(nil, 10, 10, 3); got != nil {
		t.Errorf("Expected nil for short buffer, got %v", got)
	}
	if got := SampleBuffer(make([]byte, 400), 10, 10, 0); got != nil {
		t.Errorf("Expected nil for zero gap, got %v", got)
	}
	if got := SampleBuffer(make([]byte, 400), 10, 10, 3); len(got) != 0 {
		t.Errorf("Expected no samples for transparent buffer, got %d", len(got))
	}
}
