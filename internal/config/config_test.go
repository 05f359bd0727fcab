package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iburimskiy/gesture-particles/internal/shape"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "particles.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
	if c.Shape != shape.Heart || c.Color != "#ff0066" {
		t.Errorf("Expected HEART #ff0066 start, got %v %s", c.Shape, c.Color)
	}
	if c.Particles.Count != ParticleCount {
		t.Errorf("Expected %d particles, got %d", ParticleCount, c.Particles.Count)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Detector.MaxHands != 2 {
		t.Errorf("Expected defaults, got max hands %d", c.Detector.MaxHands)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
shape = "saturn"
color = "#ffcc00"

[particles]
count = 8000

[camera]
device = 2

[detector]
model = "/opt/models/hand.onnx"
max_hands = 1

[sound]
enabled = false
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"Shape", c.Shape, shape.Saturn},
		{"Color", c.Color, "#ffcc00"},
		{"Count", c.Particles.Count, 8000},
		{"Kept size", c.Particles.Size, PointSize},
		{"Device", c.Camera.Device, 2},
		{"Kept camera width", c.Camera.Width, 640},
		{"Model", c.Detector.Model, "/opt/models/hand.onnx"},
		{"Max hands", c.Detector.MaxHands, 1},
		{"Kept input size", c.Detector.InputSize, 224},
		{"Sound", c.Sound.Enabled, false},
		{"Kept volume", c.Sound.Volume, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"Bad shape", `shape = "cube"`, "unknown shape"},
		{"Bad color", `color = "pink"`, "parse color"},
		{"Unknown key", `colour = "#ffffff"`, "unknown key"},
		{"Zero count", "[particles]\ncount = 0", "particles.count"},
		{"Too many hands", "[detector]\nmax_hands = 3", "detector.max_hands"},
		{"Syntax", `shape = `, "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	c := Default()
	c.Particles.Count = -1
	c.Sound.Volume = 2
	err := c.Validate()
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "particles.count") || !strings.Contains(err.Error(), "sound.volume") {
		t.Errorf("Expected both problems reported, got %v", err)
	}
}
