package scene

// Frame is one projected view of the scene, ready for a Surface.
type Frame struct {
	Width, Height int
	Rotation      float64
	// Sprites are sorted back to front.
	Sprites []Sprite
	Guide   []GuidePoint
	// Outline is the projected silhouette of the layout sphere, closed.
	Outline []Point
}

// Point is a position in viewport pixels.
type Point struct {
	X, Y float64
}

// Sprite is a label placed in viewport pixels.
type Sprite struct {
	Label *Label
	// X, Y is the billboard centre.
	X, Y    float64
	W, H    float64
	Depth   float64
	Opacity float64
	// Behind is set for labels on the far hemisphere.
	Behind bool
}

// GuidePoint is a lit point of the globe outline.
type GuidePoint struct {
	X, Y   float64
	Shade  float64
	Behind bool
}
