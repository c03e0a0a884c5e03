// Package scene builds the rotating word sphere and drives its render lifecycle.
package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"wordsphere/internal/geom"
	"wordsphere/internal/words"
)

// Group is the rotating container holding every label.
type Group struct {
	RotationY float64
	Labels    []*Label
}

// Scene is one fully built word sphere.
type Scene struct {
	ID     string
	Camera *geom.Camera
	Lights Lights
	Group  *Group
	// Points are the layout points, index-aligned with Group.Labels.
	Points []geom.Vec3

	guide  []geom.Vec3
	radius float64
	speed  float64
}

const outlineSegments = 72

// Build lays items out on the sphere and creates one label per item for a
// w x h viewport.
func Build(items []words.Item, opts Options, w, h int) (*Scene, error) {
	if lw, lh := opts.Label.Width, opts.Label.Height; lw <= 0 || lh <= 0 || lw > MaxLabelSide || lh > MaxLabelSide {
		return nil, fmt.Errorf("label texture %dx%d: %w", lw, lh, ErrResourceUnavailable)
	}
	face, err := newFace(opts.Label.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	points := geom.FibonacciSphere(len(items), opts.LayoutRadius)
	g := &Group{Labels: make([]*Label, len(items))}
	for i, it := range items {
		g.Labels[i] = newLabel(i, it, points[i], face, opts.Label)
	}
	c := opts.Camera
	return &Scene{
		ID:     uuid.NewString(),
		Camera: geom.NewCamera(c.FOV, c.Distance, c.Near, c.Far, w, h),
		Lights: opts.Lights,
		Group:  g,
		Points: points,
		guide:  geom.FibonacciSphere(opts.GuidePoints, opts.LayoutRadius),
		radius: opts.LayoutRadius,
		speed:  opts.RotationSpeed,
	}, nil
}

// Step advances the group rotation by one frame.
func (s *Scene) Step() {
	s.Group.RotationY += s.speed
}

// Frame projects the scene into a w x h viewport. Sprites are ordered back
// to front.
func (s *Scene) Frame(w, h int) *Frame {
	f := &Frame{Width: w, Height: h, Rotation: s.Group.RotationY}
	rot := s.Group.RotationY
	for _, gp := range s.guide {
		p := gp.RotateY(rot)
		pr, ok := s.Camera.Project(p, w, h)
		if !ok {
			continue
		}
		f.Guide = append(f.Guide, GuidePoint{
			X:      pr.X,
			Y:      pr.Y,
			Shade:  s.Lights.Shade(p),
			Behind: p.Z < 0,
		})
	}
	f.Sprites = make([]Sprite, 0, len(s.Group.Labels))
	for _, l := range s.Group.Labels {
		p := l.Position.RotateY(rot)
		pr, ok := s.Camera.Project(p, w, h)
		if !ok {
			continue
		}
		f.Sprites = append(f.Sprites, Sprite{
			Label:   l,
			X:       pr.X,
			Y:       pr.Y,
			W:       l.Width * pr.PixelsPerUnit,
			H:       l.Height * pr.PixelsPerUnit,
			Depth:   pr.Depth,
			Opacity: l.Opacity,
			Behind:  p.Z < 0,
		})
	}
	sort.SliceStable(f.Sprites, func(i, j int) bool { return f.Sprites[i].Depth > f.Sprites[j].Depth })
	f.Outline = s.outline(w, h)
	return f
}

// outline projects the circle where the camera's sight lines graze the
// sphere: it lies in the plane z = r²/d with radius r·sqrt(1 - r²/d²).
func (s *Scene) outline(w, h int) []Point {
	d, r := s.Camera.Distance, s.radius
	if r <= 0 || d <= r {
		return nil
	}
	z := r * r / d
	cr := r * math.Sqrt(1-(r*r)/(d*d))
	pts := make([]Point, 0, outlineSegments+1)
	for i := 0; i <= outlineSegments; i++ {
		a := 2 * math.Pi * float64(i) / outlineSegments
		pr, ok := s.Camera.Project(geom.Vec3{X: cr * math.Cos(a), Y: cr * math.Sin(a), Z: z}, w, h)
		if !ok {
			return nil
		}
		pts = append(pts, Point{X: pr.X, Y: pr.Y})
	}
	return pts
}

// Clear drops every label and texture.
func (s *Scene) Clear() {
	for _, l := range s.Group.Labels {
		l.Texture = nil
	}
	s.Group.Labels = nil
	s.Points = nil
	s.guide = nil
	s.radius = 0
}
