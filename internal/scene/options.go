package scene

import (
	"image/color"
	"math"

	"wordsphere/internal/geom"
)

// Options configures scene construction.
type Options struct {
	// LayoutRadius scales the unit Fibonacci sphere.
	LayoutRadius float64
	// RotationSpeed is the y rotation added per frame, in radians.
	RotationSpeed float64
	// GuidePoints is the density of the globe guide drawn behind labels; 0 disables it.
	GuidePoints int
	Camera      CameraOptions
	Lights      Lights
	Label       LabelStyle
}

type CameraOptions struct {
	FOV      float64
	Distance float64
	Near     float64
	Far      float64
}

// Lights holds one ambient and one directional light.
type Lights struct {
	Ambient     float64
	Directional float64
	// Direction points from the origin towards the directional light.
	Direction geom.Vec3
}

// Shade returns the light reaching a surface with the given normal, in [0, 1].
func (l Lights) Shade(normal geom.Vec3) float64 {
	v := l.Ambient + l.Directional*math.Max(0, normal.Normalize().Dot(l.Direction.Normalize()))
	return math.Min(1, math.Max(0, v))
}

// LabelStyle controls how label textures are drawn.
type LabelStyle struct {
	Width, Height   int
	FontSize        float64
	FeaturedColor   color.RGBA
	AccentColor     color.RGBA
	FeaturedOpacity float64
	AccentOpacity   float64
	FeaturedScale   float64
}

// DefaultOptions mirrors config.DefaultConfig.
func DefaultOptions() Options {
	return Options{
		LayoutRadius:  2.2,
		RotationSpeed: 0.003,
		GuidePoints:   400,
		Camera:        CameraOptions{FOV: 60, Distance: 8, Near: 0.1, Far: 100},
		Lights: Lights{
			Ambient:     0.8,
			Directional: 0.7,
			Direction:   geom.Vec3{X: 5, Y: 5, Z: 5},
		},
		Label: LabelStyle{
			Width:           256,
			Height:          64,
			FontSize:        32,
			FeaturedColor:   color.RGBA{255, 255, 255, 255},
			AccentColor:     color.RGBA{0x66, 0xcc, 0xff, 255},
			FeaturedOpacity: 1.0,
			AccentOpacity:   0.7,
			FeaturedScale:   1.2,
		},
	}
}
