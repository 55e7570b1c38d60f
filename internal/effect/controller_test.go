package effect

import (
	"math/rand"
	"testing"

	"chosenoffset.com/textparticles/internal/config"
	"chosenoffset.com/textparticles/internal/render"
	"chosenoffset.com/textparticles/internal/render/software"
)

func newTestController(t *testing.T, seed int64) (*Controller, *software.Renderer) {
	t.Helper()
	data, err := render.LoadFontData("")
	if err != nil {
		t.Fatalf("Failed to load font: %v", err)
	}
	r, err := software.NewRenderer(data)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	cfg := config.DefaultConfig()
	return NewController(r, cfg, rand.New(rand.NewSource(seed))), r
}

func TestControllerStartsIdle(t *testing.T) {
	c, _ := newTestController(t, 1)
	if c.State() != Idle {
		t.Errorf("Expected idle state, got %v", c.State())
	}
	if c.Field().Len() != 0 {
		t.Errorf("Expected empty field, got %d particles", c.Field().Len())
	}
}

func TestControllerFullPipeline(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Resize(400, 200)

	c.SubmitText("HI")
	if c.State() != Displaying {
		t.Errorf("Expected displaying state, got %v", c.State())
	}
	n := c.Field().Len()
	if n == 0 {
		t.Fatal("Expected particles for \"HI\"")
	}

	for _, p := range c.Field().Particles() {
		if int(p.OriginX)%3 != 0 || int(p.OriginY)%3 != 0 {
			t.Fatalf("Expected grid-aligned origins, got (%g, %g)", p.OriginX, p.OriginY)
		}
		if p.Size != 3 {
			t.Fatalf("Expected particle size 3, got %g", p.Size)
		}
		if p.Color.A != 255 {
			t.Fatalf("Expected opaque particle color, got %v", p.Color)
		}
	}

	c.SubmitText("")
	if c.Field().Len() != 0 {
		t.Errorf("Expected empty field after empty text, got %d particles", c.Field().Len())
	}
	if c.State() != Displaying {
		t.Errorf("Expected to stay displaying, got %v", c.State())
	}
}

func TestControllerClearsRasterAfterSampling(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Resize(200, 100)
	c.SubmitText("HI")

	buf := make([]byte, 4*200*100)
	c.raster.ReadPixels(buf)
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 0 {
			t.Fatalf("Expected raster cleared after sampling, alpha at byte %d is %d", i, buf[i])
		}
	}
}

func TestControllerResizeIsIdempotent(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Resize(400, 200)
	c.SubmitText("HI there")

	type origin struct{ x, y float64 }
	before := map[origin]bool{}
	for _, p := range c.Field().Particles() {
		before[origin{p.OriginX, p.OriginY}] = true
	}

	c.Resize(400, 200)

	if got := c.Field().Len(); got != len(before) {
		t.Fatalf("Expected %d particles after same-size resize, got %d", len(before), got)
	}
	for _, p := range c.Field().Particles() {
		if !before[origin{p.OriginX, p.OriginY}] {
			t.Errorf("Unexpected origin (%g, %g) after same-size resize", p.OriginX, p.OriginY)
		}
	}
	if c.Text() != "HI there" {
		t.Errorf("Expected text to survive resize, got %q", c.Text())
	}
}

func TestControllerResizeReflows(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Resize(1600, 400)

	text := "wide enough to wrap"
	if lines := c.Layout(text).Lines; len(lines) != 1 {
		t.Fatalf("Expected one line at 1600px, got %q", lines)
	}

	c.Resize(300, 800)
	if lines := c.Layout(text).Lines; len(lines) < 2 {
		t.Errorf("Expected text to wrap at 300px, got %q", lines)
	}
	if c.MaxTextWidth() != 240 {
		t.Errorf("Expected max text width 240, got %g", c.MaxTextWidth())
	}
	if x, _ := c.TextAnchor(); x != 150 {
		t.Errorf("Expected text anchor x 150, got %g", x)
	}
}

func TestControllerZeroSize(t *testing.T) {
	c, _ := newTestController(t, 1)
	c.Resize(400, 200)
	c.SubmitText("HI")

	c.Resize(0, 0)
	if c.Field().Len() != 0 {
		t.Errorf("Expected empty field on zero-size surface, got %d", c.Field().Len())
	}

	c.Resize(400, 200)
	if c.Field().Len() == 0 {
		t.Error("Expected particles again after growing back")
	}
}

func TestControllerTick(t *testing.T) {
	c, r := newTestController(t, 1)
	c.Resize(400, 200)
	c.SubmitText("HI")

	screen := r.NewImage(400, 200).(*software.Image)
	// Slowest ease closes 0.5% per tick; particles start on the bottom edge
	for i := 0; i < 2000; i++ {
		c.Tick(screen)
	}

	if !c.Field().Settled(0.5) {
		t.Error("Expected particles to settle with the pointer offscreen")
	}

	inked := 0
	rgba := screen.RGBA()
	for i := 3; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] != 0 {
			inked++
		}
	}
	if inked == 0 {
		t.Error("Expected particles drawn on the screen")
	}

	// A pointer on the text scatters it
	p := c.Field().Particles()[0]
	c.SetPointer(p.X+1, p.Y+1)
	c.Tick(screen)
	if c.Field().Settled(0.5) {
		t.Error("Expected pointer to disturb the particles")
	}
	if ptr := c.Pointer(); ptr.X != p.X+1 || ptr.Radius != 20000 {
		t.Errorf("Expected pointer snapshot at %g with radius 20000, got %+v", p.X+1, ptr)
	}
}
