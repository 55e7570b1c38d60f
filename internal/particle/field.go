// Package particle holds the particle field: square particles that are pushed
// away from the pointer and spring back to the pixel they were sampled from.
package particle

import (
	"image/color"
	"math"
	"math/rand"

	"chosenoffset.com/textparticles/internal/render"
)

// DefaultMinDistance is the squared-distance floor used when a Pointer leaves
// MinDistance unset.
const DefaultMinDistance = 1.0

// Pointer is the per-frame snapshot of the pointer the field reacts to.
type Pointer struct {
	X, Y float64

	// Radius is the squared-distance threshold inside which the pointer repels.
	Radius float64

	// MinDistance is the smallest squared distance used in the force term.
	MinDistance float64
}

// Sample is one inked pixel of rasterized text.
type Sample struct {
	X, Y  int
	Color color.RGBA
}

// Particle is one sampled pixel, drawn as a Size x Size square.
type Particle struct {
	X, Y             float64 // Current position
	OriginX, OriginY float64 // Sampled position the particle eases back to
	VX, VY           float64
	Size             float64
	Color            color.RGBA
	Friction         float64 // Velocity kept per tick
	Ease             float64 // Fraction of the distance to origin closed per tick
}

// Params are the per-particle physics ranges. Draws are uniform in [Min, Max).
type Params struct {
	FrictionMin, FrictionMax float64
	EaseMin, EaseMax         float64

	// SpawnAtBottom starts new particles at a random X on the bottom edge
	// instead of on their origin.
	SpawnAtBottom bool
}

// DefaultParams returns the classic ranges: friction [0.15, 0.75), ease [0.005, 0.105).
func DefaultParams() Params {
	return Params{
		FrictionMin:   0.15,
		FrictionMax:   0.75,
		EaseMin:       0.005,
		EaseMax:       0.105,
		SpawnAtBottom: true,
	}
}

// Field owns the active particles.
type Field struct {
	particles []Particle
	params    Params
	rng       *rand.Rand

	width, height float64
}

// NewField creates an empty field drawing its random constants from rng.
func NewField(params Params, rng *rand.Rand) *Field {
	return &Field{
		params: params,
		rng:    rng,
	}
}

// SetBounds sets the surface size used when spawning particles.
func (f *Field) SetBounds(width, height int) {
	f.width = float64(width)
	f.height = float64(height)
}

// Rebuild replaces every particle with one per sample, sized gap.
func (f *Field) Rebuild(samples []Sample, gap int) {
	particles := make([]Particle, len(samples))
	for i, s := range samples {
		p := Particle{
			OriginX:  float64(s.X),
			OriginY:  float64(s.Y),
			Size:     float64(gap),
			Color:    s.Color,
			Friction: f.params.FrictionMin + f.rng.Float64()*(f.params.FrictionMax-f.params.FrictionMin),
			Ease:     f.params.EaseMin + f.rng.Float64()*(f.params.EaseMax-f.params.EaseMin),
		}
		if f.params.SpawnAtBottom {
			p.X = f.rng.Float64() * f.width
			p.Y = f.height
		} else {
			p.X = p.OriginX
			p.Y = p.OriginY
		}
		particles[i] = p
	}
	f.particles = particles
}

// Update advances every particle by one tick against the pointer snapshot.
func (f *Field) Update(ptr Pointer) {
	for i := range f.particles {
		f.particles[i].update(ptr)
	}
}

func (p *Particle) update(ptr Pointer) {
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	distance := dx*dx + dy*dy
	floor := ptr.MinDistance
	if floor <= 0 {
		floor = DefaultMinDistance
	}
	if distance < floor {
		distance = floor
	}

	if distance < ptr.Radius {
		force := -ptr.Radius / distance
		angle := math.Atan2(dy, dx)
		p.VX += force * math.Cos(angle)
		p.VY += force * math.Sin(angle)
	}

	p.VX *= p.Friction
	p.VY *= p.Friction
	p.X += p.VX + (p.OriginX-p.X)*p.Ease
	p.Y += p.VY + (p.OriginY-p.Y)*p.Ease
}

// Draw paints every particle onto dst, later particles on top.
func (f *Field) Draw(dst render.Image) {
	for i := range f.particles {
		p := &f.particles[i]
		dst.FillRect(p.X, p.Y, p.Size, p.Size, p.Color)
	}
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the live particle slice. Callers must not append to it.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Settled reports whether every particle is within tolerance of its origin
// on both axes.
func (f *Field) Settled(tolerance float64) bool {
	for i := range f.particles {
		p := &f.particles[i]
		if math.Abs(p.X-p.OriginX) > tolerance || math.Abs(p.Y-p.OriginY) > tolerance {
			return false
		}
	}
	return true
}
