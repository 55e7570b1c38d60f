// Package config provides the tunable parameters of the text particle effect.
// Values are loaded from a YAML file on top of built-in defaults so a missing
// or partial file still yields a complete configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Spawn modes for freshly built particles
const (
	SpawnBottom = "bottom" // random X along the bottom edge
	SpawnOrigin = "origin" // at rest on the sampled pixel
)

// Config holds all settings for a run
type Config struct {
	// Host window
	Window WindowConfig `yaml:"window"`

	// Text rasterization
	Text TextConfig `yaml:"text"`

	// Particle sampling and physics
	Particles ParticleConfig `yaml:"particles"`

	// Pointer repulsion
	Pointer PointerConfig `yaml:"pointer"`

	// Seed for the particle random source (0 picks one from the clock)
	Seed int64 `yaml:"seed"`
}

// WindowConfig describes the initial host surface
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// TextConfig controls how text is laid out before sampling
type TextConfig struct {
	FontSize        float64        `yaml:"font_size"`         // Pixel size of the rasterized font
	FontPath        string         `yaml:"font_path"`         // TTF/OTF file; empty uses the embedded Go font
	LineHeightRatio float64        `yaml:"line_height_ratio"` // Line height as a fraction of font size
	MaxWidthRatio   float64        `yaml:"max_width_ratio"`   // Wrap width as a fraction of surface width
	Initial         string         `yaml:"initial"`           // Text shown at startup (empty starts idle)
	Gradient        []GradientStop `yaml:"gradient"`          // Fill stops along the surface diagonal
}

// GradientStop is one color stop of the text fill
type GradientStop struct {
	Offset float64 `yaml:"offset"` // 0.0 to 1.0
	Color  string  `yaml:"color"`  // Hex, e.g. "#ff0000"
}

// ParticleConfig controls sampling and per-particle physics ranges
type ParticleConfig struct {
	Gap         int     `yaml:"gap"`          // Sampling stride in pixels, also the particle size
	FrictionMin float64 `yaml:"friction_min"` // Lower bound of the random friction draw
	FrictionMax float64 `yaml:"friction_max"` // Upper bound (exclusive)
	EaseMin     float64 `yaml:"ease_min"`     // Lower bound of the random ease draw
	EaseMax     float64 `yaml:"ease_max"`     // Upper bound (exclusive)
	Spawn       string  `yaml:"spawn"`        // SpawnBottom or SpawnOrigin
}

// PointerConfig controls the repulsion field around the pointer
type PointerConfig struct {
	Radius      float64 `yaml:"radius"`       // Squared-distance influence threshold
	MinDistance float64 `yaml:"min_distance"` // Squared-distance floor for the force
}

// DefaultConfig returns the settings of the classic effect
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    800,
			Title:     "Text Particles",
			Resizable: true,
		},
		Text: TextConfig{
			FontSize:        80,
			LineHeightRatio: 0.9,
			MaxWidthRatio:   0.8,
			Initial:         "Hello particles",
			Gradient: []GradientStop{
				{Offset: 0.3, Color: "#ff0000"},
				{Offset: 0.5, Color: "#0000ff"},
				{Offset: 0.7, Color: "#800080"},
			},
		},
		Particles: ParticleConfig{
			Gap:         3,
			FrictionMin: 0.15,
			FrictionMax: 0.75,
			EaseMin:     0.005,
			EaseMax:     0.105,
			Spawn:       SpawnBottom,
		},
		Pointer: PointerConfig{
			Radius:      20000,
			MinDistance: 1,
		},
	}
}

// LoadConfig loads settings from a YAML file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that every value keeps the simulation finite and convergent
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Text.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %g", c.Text.FontSize)
	}
	if c.Text.LineHeightRatio <= 0 {
		return fmt.Errorf("line_height_ratio must be positive, got %g", c.Text.LineHeightRatio)
	}
	if c.Text.MaxWidthRatio <= 0 || c.Text.MaxWidthRatio > 1 {
		return fmt.Errorf("max_width_ratio must be in (0, 1], got %g", c.Text.MaxWidthRatio)
	}
	if len(c.Text.Gradient) == 0 {
		return errors.New("gradient needs at least one stop")
	}
	prev := 0.0
	for i, stop := range c.Text.Gradient {
		if stop.Offset < 0 || stop.Offset > 1 {
			return fmt.Errorf("gradient stop %d: offset %g outside [0, 1]", i, stop.Offset)
		}
		if stop.Offset < prev {
			return fmt.Errorf("gradient stop %d: offsets must not decrease", i)
		}
		prev = stop.Offset
		if _, err := colorful.Hex(stop.Color); err != nil {
			return fmt.Errorf("gradient stop %d: %w", i, err)
		}
	}

	p := c.Particles
	if p.Gap < 1 {
		return fmt.Errorf("gap must be at least 1, got %d", p.Gap)
	}
	if p.FrictionMin <= 0 || p.FrictionMax >= 1 || p.FrictionMin > p.FrictionMax {
		return fmt.Errorf("friction range must lie inside (0, 1), got [%g, %g)", p.FrictionMin, p.FrictionMax)
	}
	if p.EaseMin <= 0 || p.EaseMax >= 1 || p.EaseMin > p.EaseMax {
		return fmt.Errorf("ease range must lie inside (0, 1), got [%g, %g)", p.EaseMin, p.EaseMax)
	}
	if p.Spawn != SpawnBottom && p.Spawn != SpawnOrigin {
		return fmt.Errorf("unknown spawn mode %q", p.Spawn)
	}

	if c.Pointer.Radius < 0 {
		return fmt.Errorf("pointer radius must not be negative, got %g", c.Pointer.Radius)
	}
	if c.Pointer.MinDistance <= 0 {
		return fmt.Errorf("pointer min_distance must be positive, got %g", c.Pointer.MinDistance)
	}

	return nil
}

// LineHeight returns the distance between wrapped baselines in pixels
func (c *Config) LineHeight() float64 {
	return c.Text.FontSize * c.Text.LineHeightRatio
}
