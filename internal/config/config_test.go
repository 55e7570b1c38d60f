package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}

	if cfg.Particles.Gap != 3 {
		t.Errorf("Expected gap 3, got %d", cfg.Particles.Gap)
	}
	if cfg.Pointer.Radius != 20000 {
		t.Errorf("Expected radius 20000, got %g", cfg.Pointer.Radius)
	}
	if got := cfg.LineHeight(); got != 72 {
		t.Errorf("Expected line height 72, got %g", got)
	}
	if len(cfg.Text.Gradient) != 3 {
		t.Fatalf("Expected 3 gradient stops, got %d", len(cfg.Text.Gradient))
	}
	offsets := []float64{0.3, 0.5, 0.7}
	for i, stop := range cfg.Text.Gradient {
		if stop.Offset != offsets[i] {
			t.Errorf("Expected stop %d at %g, got %g", i, offsets[i], stop.Offset)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error %v", err)
	}
	if cfg.Text.FontSize != 80 {
		t.Errorf("Expected default font size 80, got %g", cfg.Text.FontSize)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	yamlData := `
window:
  width: 640
  height: 360
text:
  font_size: 48
  gradient:
    - offset: 0
      color: "#00ff00"
particles:
  gap: 4
  spawn: origin
seed: 42
`
	path := filepath.Join(t.TempDir(), "effect.yaml")
	if err := os.WriteFile(path, []byte(yamlData), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 360 {
		t.Errorf("Expected window 640x360, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Text.FontSize != 48 {
		t.Errorf("Expected font size 48, got %g", cfg.Text.FontSize)
	}
	if len(cfg.Text.Gradient) != 1 || cfg.Text.Gradient[0].Color != "#00ff00" {
		t.Errorf("Expected a single green stop, got %+v", cfg.Text.Gradient)
	}
	if cfg.Particles.Gap != 4 {
		t.Errorf("Expected gap 4, got %d", cfg.Particles.Gap)
	}
	if cfg.Particles.Spawn != SpawnOrigin {
		t.Errorf("Expected spawn %q, got %q", SpawnOrigin, cfg.Particles.Spawn)
	}
	if cfg.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Seed)
	}

	// Untouched sections keep their defaults
	if cfg.Particles.FrictionMin != 0.15 {
		t.Errorf("Expected default friction_min 0.15, got %g", cfg.Particles.FrictionMin)
	}
	if cfg.Pointer.MinDistance != 1 {
		t.Errorf("Expected default min_distance 1, got %g", cfg.Pointer.MinDistance)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [1, 2"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected parse error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"zero gap", func(c *Config) { c.Particles.Gap = 0 }, "gap"},
		{"friction reaches one", func(c *Config) { c.Particles.FrictionMax = 1 }, "friction"},
		{"ease not positive", func(c *Config) { c.Particles.EaseMin = 0 }, "ease"},
		{"inverted ease", func(c *Config) { c.Particles.EaseMin = 0.5; c.Particles.EaseMax = 0.1 }, "ease"},
		{"bad stop color", func(c *Config) { c.Text.Gradient[1].Color = "blue" }, "gradient stop 1"},
		{"decreasing offsets", func(c *Config) { c.Text.Gradient[2].Offset = 0.1 }, "must not decrease"},
		{"no stops", func(c *Config) { c.Text.Gradient = nil }, "at least one stop"},
		{"unknown spawn", func(c *Config) { c.Particles.Spawn = "top" }, "spawn"},
		{"zero min distance", func(c *Config) { c.Pointer.MinDistance = 0 }, "min_distance"},
		{"wide text", func(c *Config) { c.Text.MaxWidthRatio = 1.5 }, "max_width_ratio"},
		{"empty window", func(c *Config) { c.Window.Width = 0 }, "window size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
