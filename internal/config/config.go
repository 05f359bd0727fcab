package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/iburimskiy/gesture-particles/internal/shape"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Status pill
	PillWidth  = 160
	PillHeight = 24

	// Control panel
	PanelWidth   = 260
	PanelPadding = 16
	SwatchSize   = 28
	ButtonHeight = 36

	// Visualization parameters
	ParticleCount = 5000
	PointSize     = 0.15
	Opacity       = 0.85
	RotationSpeed = 0.001
	ViewDistance  = 15.0
	FieldOfView   = 60.0
	DragSpeed     = 0.005
	NearPlane     = 0.1
	FarPlane      = 1000.0
)

// Config holds the runtime settings of a session. Default() is
// overlaid by an optional TOML file, then by command line flags.
type Config struct {
	Shape   shape.Kind `toml:"shape"`
	Color   string     `toml:"color"`
	Verbose bool       `toml:"verbose"`

	Window    Window    `toml:"window"`
	Particles Particles `toml:"particles"`
	View      View      `toml:"view"`
	Camera    Camera    `toml:"camera"`
	Detector  Detector  `toml:"detector"`
	Sound     Sound     `toml:"sound"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Particles struct {
	Count   int     `toml:"count"`
	Size    float64 `toml:"size"`    // world units
	Opacity float64 `toml:"opacity"` // 0-1
}

type View struct {
	Distance      float64 `toml:"distance"`
	FieldOfView   float64 `toml:"fov"`            // degrees
	RotationSpeed float64 `toml:"rotation_speed"` // radians per frame
}

// Camera selects the capture device.
type Camera struct {
	Enabled bool `toml:"enabled"`
	Device  int  `toml:"device"`
	Width   int  `toml:"width"`
	Height  int  `toml:"height"`
	FPS     int  `toml:"fps"`
}

// Detector configures the landmark model run on each frame.
type Detector struct {
	Model          string  `toml:"model"`
	ModelConfig    string  `toml:"model_config"`
	MaxHands       int     `toml:"max_hands"`
	MinConfidence  float64 `toml:"min_confidence"`
	InputSize      int     `toml:"input_size"`
	LandmarkOutput string  `toml:"landmark_output"`
	PresenceOutput string  `toml:"presence_output"`
}

type Sound struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0-1
}

// Default returns the settings used when no file or flag overrides them.
func Default() *Config {
	return &Config{
		Shape: shape.Heart,
		Color: "#ff0066",
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  "Gesture Particles - 1-6: shape, C: color, Esc/Q: quit",
		},
		Particles: Particles{
			Count:   ParticleCount,
			Size:    PointSize,
			Opacity: Opacity,
		},
		View: View{
			Distance:      ViewDistance,
			FieldOfView:   FieldOfView,
			RotationSpeed: RotationSpeed,
		},
		Camera: Camera{
			Enabled: true,
			Device:  0,
			Width:   640,
			Height:  480,
			FPS:     30,
		},
		Detector: Detector{
			Model:          "models/hand_landmark.onnx",
			MaxHands:       2,
			MinConfidence:  0.5,
			InputSize:      224,
			LandmarkOutput: "Identity",
			PresenceOutput: "Identity_1",
		},
		Sound: Sound{
			Enabled: true,
			Volume:  0.3,
		},
	}
}

// Load overlays the TOML file at path onto the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.Particles.Count <= 0 {
		errs = append(errs, fmt.Errorf("particles.count must be positive, got %d", c.Particles.Count))
	}
	if c.Particles.Opacity < 0 || c.Particles.Opacity > 1 {
		errs = append(errs, fmt.Errorf("particles.opacity must be within [0,1], got %v", c.Particles.Opacity))
	}
	if c.Particles.Size <= 0 {
		errs = append(errs, fmt.Errorf("particles.size must be positive, got %v", c.Particles.Size))
	}
	if _, err := shape.ParseColor(c.Color); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.View.FieldOfView <= 0 || c.View.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("view.fov must be within (0,180), got %v", c.View.FieldOfView))
	}
	if c.View.Distance <= 0 {
		errs = append(errs, fmt.Errorf("view.distance must be positive, got %v", c.View.Distance))
	}
	if c.Detector.MaxHands < 1 || c.Detector.MaxHands > 2 {
		errs = append(errs, fmt.Errorf("detector.max_hands must be 1 or 2, got %d", c.Detector.MaxHands))
	}
	if c.Detector.InputSize <= 0 {
		errs = append(errs, fmt.Errorf("detector.input_size must be positive, got %d", c.Detector.InputSize))
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		errs = append(errs, fmt.Errorf("sound.volume must be within [0,1], got %v", c.Sound.Volume))
	}
	return errors.Join(errs...)
}
