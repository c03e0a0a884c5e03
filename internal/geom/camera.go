package geom

import "math"

// Camera is a perspective camera on the +Z axis looking at the origin.
type Camera struct {
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
	Distance float64 // camera sits at (0, 0, Distance)
}

// NewCamera returns a camera sized for a w x h viewport.
func NewCamera(fov, distance, near, far float64, w, h int) *Camera {
	c := &Camera{FOV: fov, Near: near, Far: far, Distance: distance, Aspect: 1}
	c.SetAspect(w, h)
	return c
}

// SetAspect updates the aspect ratio for a w x h viewport. Degenerate sizes
// leave the previous aspect in place.
func (c *Camera) SetAspect(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Aspect = float64(w) / float64(h)
}

// Position returns the camera's world position.
func (c *Camera) Position() Vec3 { return Vec3{Z: c.Distance} }

// Projection is a world point mapped into viewport pixels.
type Projection struct {
	X, Y float64 // pixel coordinates, origin top-left
	// Depth is the distance along the view axis (larger is farther).
	Depth float64
	// PixelsPerUnit converts world lengths at this depth into pixels.
	PixelsPerUnit float64
}

// Project maps p into a w x h viewport. ok is false when p lies outside the
// near/far range or the viewport is empty.
func (c *Camera) Project(p Vec3, w, h int) (Projection, bool) {
	if w <= 0 || h <= 0 {
		return Projection{}, false
	}
	depth := c.Distance - p.Z
	if depth < c.Near || depth > c.Far {
		return Projection{}, false
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	ndcX := f / c.Aspect * p.X / depth
	ndcY := f * p.Y / depth
	return Projection{
		X:             (ndcX + 1) / 2 * float64(w),
		Y:             (1 - ndcY) / 2 * float64(h),
		Depth:         depth,
		PixelsPerUnit: f / depth * float64(h) / 2,
	}, true
}
