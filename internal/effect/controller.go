// Package effect turns submitted text into a particle field and drives it
// frame by frame. Text is wrapped and drawn onto an offscreen raster, the
// raster's pixels are read back and sampled on a grid, and every inked grid
// pixel becomes a particle.
package effect

import (
	"image"
	"log"
	"math/rand"

	"chosenoffset.com/textparticles/internal/config"
	"chosenoffset.com/textparticles/internal/particle"
	"chosenoffset.com/textparticles/internal/render"
)

// State is the controller's display state.
type State int

const (
	// Idle means no text has been laid out yet.
	Idle State = iota
	// Displaying means a particle set is live (possibly empty).
	Displaying
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Displaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// offscreen is where the pointer rests until the host reports a position.
const offscreen = -1e4

// Controller owns the surface geometry, the raster and the particle field.
type Controller struct {
	renderer render.Renderer
	cfg      *config.Config
	field    *particle.Field
	pointer  particle.Pointer

	width, height int
	maxTextWidth  float64
	textX, textY  float64

	raster render.Image
	pixels []byte
	fill   image.Image

	text  string
	state State
}

// NewController creates an idle controller. Call Resize before submitting.
func NewController(r render.Renderer, cfg *config.Config, rng *rand.Rand) *Controller {
	params := particle.Params{
		FrictionMin:   cfg.Particles.FrictionMin,
		FrictionMax:   cfg.Particles.FrictionMax,
		EaseMin:       cfg.Particles.EaseMin,
		EaseMax:       cfg.Particles.EaseMax,
		SpawnAtBottom: cfg.Particles.Spawn == config.SpawnBottom,
	}
	return &Controller{
		renderer: r,
		cfg:      cfg,
		field:    particle.NewField(params, rng),
		pointer: particle.Pointer{
			X:           offscreen,
			Y:           offscreen,
			Radius:      cfg.Pointer.Radius,
			MinDistance: cfg.Pointer.MinDistance,
		},
	}
}

// Resize adopts new surface dimensions and re-flows the last submitted text.
func (c *Controller) Resize(width, height int) {
	c.width = width
	c.height = height
	c.maxTextWidth = float64(width) * c.cfg.Text.MaxWidthRatio
	c.textX = float64(width) / 2
	c.textY = float64(height) / 2
	c.field.SetBounds(width, height)

	if c.raster != nil {
		c.raster.Dispose()
		c.raster = nil
	}
	c.pixels = nil
	c.fill = nil
	if width > 0 && height > 0 {
		c.raster = c.renderer.NewImage(width, height)
		c.pixels = make([]byte, 4*width*height)
		c.fill = c.newTextFill()
	}

	c.SubmitText(c.text)
}

// newTextFill builds the gradient spanning the surface diagonal.
func (c *Controller) newTextFill() image.Image {
	bounds := image.Rect(0, 0, c.width, c.height)
	g := render.NewLinearGradient(0, 0, float64(c.width), float64(c.height), bounds)
	for _, stop := range c.cfg.Text.Gradient {
		if err := g.AddColorStop(stop.Offset, stop.Color); err != nil {
			log.Printf("Warning: skipping gradient stop: %v", err)
		}
	}
	return g
}

// SubmitText lays out text, samples it into particles and replaces the field.
func (c *Controller) SubmitText(text string) {
	c.text = text
	c.state = Displaying

	if c.raster == nil {
		c.field.Rebuild(nil, c.cfg.Particles.Gap)
		return
	}

	c.raster.Clear()
	layout := c.Layout(text)
	c.textY = layout.FirstY
	size := c.cfg.Text.FontSize
	for i, line := range layout.Lines {
		c.renderer.DrawText(c.raster, line, layout.X, layout.LineY(i), size, c.fill)
	}

	c.Resample()
}

// Layout wraps text to the current maximum width and centers it.
func (c *Controller) Layout(text string) Layout {
	size := c.cfg.Text.FontSize
	lines := WrapText(text, c.maxTextWidth, func(line string) float64 {
		return c.renderer.MeasureText(line, size)
	})
	return LayoutLines(lines, c.width, c.height, c.cfg.LineHeight())
}

// Resample reads the raster back, clears it and rebuilds the field from the
// inked grid pixels.
func (c *Controller) Resample() {
	gap := c.cfg.Particles.Gap
	if c.raster == nil {
		c.field.Rebuild(nil, gap)
		return
	}

	c.raster.ReadPixels(c.pixels)
	c.raster.Clear()
	c.field.Rebuild(SampleBuffer(c.pixels, c.width, c.height, gap), gap)
}

// SetPointer records the latest pointer position.
func (c *Controller) SetPointer(x, y float64) {
	c.pointer.X = x
	c.pointer.Y = y
}

// Pointer returns the pointer snapshot handed to the field.
func (c *Controller) Pointer() particle.Pointer {
	return c.pointer
}

// Update advances the particles one tick.
func (c *Controller) Update() {
	c.field.Update(c.pointer)
}

// Draw paints the particles onto dst.
func (c *Controller) Draw(dst render.Image) {
	c.field.Draw(dst)
}

// Tick clears dst, advances the particles and draws them.
func (c *Controller) Tick(dst render.Image) {
	dst.Clear()
	c.Update()
	c.Draw(dst)
}

// Field returns the particle field.
func (c *Controller) Field() *particle.Field {
	return c.field
}

// State returns the current display state.
func (c *Controller) State() State {
	return c.state
}

// Text returns the last submitted text.
func (c *Controller) Text() string {
	return c.text
}

// Size returns the current surface dimensions.
func (c *Controller) Size() (width, height int) {
	return c.width, c.height
}

// TextAnchor returns the horizontal center and the middle of the first line.
func (c *Controller) TextAnchor() (x, y float64) {
	return c.textX, c.textY
}

// MaxTextWidth returns the current wrap width.
func (c *Controller) MaxTextWidth() float64 {
	return c.maxTextWidth
}
