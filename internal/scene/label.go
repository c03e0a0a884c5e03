package scene

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"wordsphere/internal/geom"
	"wordsphere/internal/words"
)

// Label is a camera-facing billboard showing one word.
type Label struct {
	Index    int
	Item     words.Item
	Featured bool
	// Texture holds the rendered word; each label owns its buffer.
	Texture *image.RGBA
	// Position is the layout point at the layout radius.
	Position geom.Vec3
	Scale    float64
	// Width and Height are the billboard size in world units.
	Width, Height float64
	Color         color.RGBA
	Opacity       float64
}

// MaxLabelSide bounds each side of a label texture in pixels.
const MaxLabelSide = 4096

var boldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

func newFace(size float64) (font.Face, error) {
	f, err := boldFont()
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w: %w", ErrResourceUnavailable, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("label font face: %w: %w", ErrResourceUnavailable, err)
	}
	return face, nil
}

// LabelScale is the billboard width for item i.
func LabelScale(i int, freq float64, st LabelStyle) float64 {
	if i == 0 {
		return st.FeaturedScale
	}
	return 0.5 + 0.7*freq
}

func newLabel(i int, it words.Item, pos geom.Vec3, face font.Face, st LabelStyle) *Label {
	l := &Label{
		Index:    i,
		Item:     it,
		Featured: i == 0,
		Position: pos,
		Scale:    LabelScale(i, it.Frequency, st),
		Color:    st.AccentColor,
		Opacity:  st.AccentOpacity,
	}
	if l.Featured {
		l.Color = st.FeaturedColor
		l.Opacity = st.FeaturedOpacity
	}
	l.Width = l.Scale
	l.Height = l.Scale * 0.3
	l.Texture = drawText(it.Text, face, st.Width, st.Height, l.Color, l.Opacity)
	return l
}

// drawText renders text centred in a w x h transparent image. Text wider
// than the image is clipped.
func drawText(text string, face font.Face, w, h int, c color.RGBA, opacity float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)})
	d := &font.Drawer{Dst: img, Src: src, Face: face}
	m := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: (fixed.I(w) - d.MeasureString(text)) / 2,
		Y: (fixed.I(h) + m.Ascent - m.Descent) / 2,
	}
	d.DrawString(text)
	return img
}
