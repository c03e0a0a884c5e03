// Package config provides configuration loading for wordsphere.
package config

import (
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"wordsphere/internal/geom"
	"wordsphere/internal/scene"
	"wordsphere/internal/words"
)

// Config is the complete wordsphere configuration.
type Config struct {
	Words     WordsConfig     `yaml:"words"`
	Layout    LayoutConfig    `yaml:"layout"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Lights    LightsConfig    `yaml:"lights"`
	Label     LabelConfig     `yaml:"label"`
	// Background is the clear color of image surfaces.
	Background string `yaml:"background"`
}

// WordsConfig selects what is shown.
type WordsConfig struct {
	// Count is how many words are drawn from Pool.
	Count int `yaml:"count"`
	// Seed fixes the shuffle; 0 means unseeded.
	Seed uint64 `yaml:"seed"`
	// Pool overrides the built-in vocabulary.
	Pool []string `yaml:"pool"`
	// File is a word-list file used instead of the pool; it is watched for changes.
	File string `yaml:"file"`
}

// LayoutConfig configures sphere placement.
type LayoutConfig struct {
	Radius float64 `yaml:"radius"`
	// GuidePoints is the density of the globe guide; 0 hides it.
	GuidePoints int `yaml:"guide_points"`
}

// AnimationConfig configures the render loop.
type AnimationConfig struct {
	// RotationSpeed is added to the group's y rotation every frame (radians).
	RotationSpeed float64 `yaml:"rotation_speed"`
	FPS           int     `yaml:"fps"`
}

// CameraConfig configures the perspective camera.
type CameraConfig struct {
	FOV      float64 `yaml:"fov"`
	Distance float64 `yaml:"distance"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
}

// LightsConfig configures the ambient and directional lights.
type LightsConfig struct {
	Ambient     float64    `yaml:"ambient"`
	Directional float64    `yaml:"directional"`
	Direction   [3]float64 `yaml:"direction"`
}

// LabelConfig configures label textures.
type LabelConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	FontSize        float64 `yaml:"font_size"`
	FeaturedColor   string  `yaml:"featured_color"`
	AccentColor     string  `yaml:"accent_color"`
	FeaturedOpacity float64 `yaml:"featured_opacity"`
	AccentOpacity   float64 `yaml:"accent_opacity"`
	FeaturedScale   float64 `yaml:"featured_scale"`
}

// DefaultConfig returns a Config matching the reference scene.
func DefaultConfig() *Config {
	return &Config{
		Words: WordsConfig{Count: 20},
		Layout: LayoutConfig{
			Radius:      2.2,
			GuidePoints: 400,
		},
		Animation: AnimationConfig{
			RotationSpeed: 0.003,
			FPS:           60,
		},
		Camera: CameraConfig{
			FOV:      60,
			Distance: 8,
			Near:     0.1,
			Far:      100,
		},
		Lights: LightsConfig{
			Ambient:     0.8,
			Directional: 0.7,
			Direction:   [3]float64{5, 5, 5},
		},
		Label: LabelConfig{
			Width:           256,
			Height:          64,
			FontSize:        32,
			FeaturedColor:   "#ffffff",
			AccentColor:     "#66ccff",
			FeaturedOpacity: 1.0,
			AccentOpacity:   0.7,
			FeaturedScale:   1.2,
		},
		Background: "#181c20",
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Words.Count < 0 {
		return fmt.Errorf("words.count must not be negative")
	}
	if c.Words.File == "" {
		pool := c.Words.Pool
		if len(pool) == 0 {
			pool = words.DefaultPool
		}
		if n := words.NewSelector(pool, nil).Size(); c.Words.Count > n {
			return fmt.Errorf("words.count %d exceeds the %d distinct pool words", c.Words.Count, n)
		}
	}
	if c.Layout.Radius <= 0 {
		return fmt.Errorf("layout.radius must be positive")
	}
	if c.Layout.GuidePoints < 0 {
		return fmt.Errorf("layout.guide_points must not be negative")
	}
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("animation.fps must be positive")
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov must be between 0 and 180")
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera.near must be positive and below camera.far")
	}
	if c.Camera.Distance <= c.Layout.Radius {
		return fmt.Errorf("camera.distance must be outside the sphere (> layout.radius)")
	}
	if c.Label.Width <= 0 || c.Label.Height <= 0 {
		return fmt.Errorf("label.width and label.height must be positive")
	}
	if c.Label.Width > scene.MaxLabelSide || c.Label.Height > scene.MaxLabelSide {
		return fmt.Errorf("label.width and label.height must not exceed %d", scene.MaxLabelSide)
	}
	if c.Label.FontSize <= 0 {
		return fmt.Errorf("label.font_size must be positive")
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"label.featured_opacity", c.Label.FeaturedOpacity},
		{"label.accent_opacity", c.Label.AccentOpacity},
	} {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s must be between 0 and 1", f.name)
		}
	}
	for _, f := range []struct {
		name string
		v    string
	}{
		{"label.featured_color", c.Label.FeaturedColor},
		{"label.accent_color", c.Label.AccentColor},
		{"background", c.Background},
	} {
		if _, err := ParseColor(f.v); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}

// FrameInterval is the time between render loop ticks.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Animation.FPS)
}

// SceneOptions converts the configuration into scene construction options.
// Call Validate first; unparsable colors fall back to white.
func (c *Config) SceneOptions() scene.Options {
	featured, _ := ParseColor(c.Label.FeaturedColor)
	accent, _ := ParseColor(c.Label.AccentColor)
	d := c.Lights.Direction
	return scene.Options{
		LayoutRadius:  c.Layout.Radius,
		RotationSpeed: c.Animation.RotationSpeed,
		GuidePoints:   c.Layout.GuidePoints,
		Camera: scene.CameraOptions{
			FOV:      c.Camera.FOV,
			Distance: c.Camera.Distance,
			Near:     c.Camera.Near,
			Far:      c.Camera.Far,
		},
		Lights: scene.Lights{
			Ambient:     c.Lights.Ambient,
			Directional: c.Lights.Directional,
			Direction:   geom.Vec3{X: d[0], Y: d[1], Z: d[2]},
		},
		Label: scene.LabelStyle{
			Width:           c.Label.Width,
			Height:          c.Label.Height,
			FontSize:        c.Label.FontSize,
			FeaturedColor:   featured,
			AccentColor:     accent,
			FeaturedOpacity: c.Label.FeaturedOpacity,
			AccentOpacity:   c.Label.AccentOpacity,
			FeaturedScale:   c.Label.FeaturedScale,
		},
	}
}

// BackgroundColor returns the parsed background color.
func (c *Config) BackgroundColor() color.RGBA {
	bg, _ := ParseColor(c.Background)
	return bg
}

// ParseColor parses "#rgb" or "#rrggbb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load returns the defaults when path is empty, else the file's contents.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFromFile(path)
}
