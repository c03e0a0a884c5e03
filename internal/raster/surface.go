// Package raster draws scene frames into in-memory RGBA images.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	"wordsphere/internal/scene"
)

// MaxSide bounds either dimension of a surface.
const MaxSide = 16384

var errDisposed = errors.New("raster: surface disposed")

// Surface is a software scene.Surface. It is not safe for concurrent use;
// the renderer serialises calls.
type Surface struct {
	bg       color.RGBA
	img      *image.RGBA
	disposed bool
}

var _ scene.Surface = (*Surface)(nil)

// New allocates a w x h surface cleared to bg.
func New(w, h int, bg color.RGBA) (*Surface, error) {
	if w <= 0 || h <= 0 || w > MaxSide || h > MaxSide {
		return nil, fmt.Errorf("raster: %dx%d surface: %w", w, h, scene.ErrResourceUnavailable)
	}
	s := &Surface{bg: bg}
	s.alloc(w, h)
	return s, nil
}

// Factory adapts New to scene.SurfaceFactory.
func Factory(bg color.RGBA) scene.SurfaceFactory {
	return func(vp scene.Viewport) (scene.Surface, error) {
		return New(vp.Width, vp.Height, bg)
	}
}

func (s *Surface) alloc(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
}

func (s *Surface) Resize(w, h int) {
	if s.disposed || w <= 0 || h <= 0 || w > MaxSide || h > MaxSide {
		return
	}
	if b := s.img.Bounds(); b.Dx() == w && b.Dy() == h {
		return
	}
	s.alloc(w, h)
}

// Render clears the image and draws the guide dots and sprites back to front.
func (s *Surface) Render(f *scene.Frame) error {
	if s.disposed {
		return errDisposed
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
	for _, g := range f.Guide {
		a := 0.25 * g.Shade
		if g.Behind {
			a = 0.08 * g.Shade
		}
		dot := image.Rect(int(g.X), int(g.Y), int(g.X)+2, int(g.Y)+2)
		c := color.NRGBA{R: 0x9a, G: 0xb4, B: 0xd0, A: uint8(a*255 + 0.5)}
		draw.Draw(s.img, dot, image.NewUniform(c), image.Point{}, draw.Over)
	}
	for _, sp := range f.Sprites {
		if sp.Label == nil || sp.Label.Texture == nil {
			continue
		}
		r := image.Rect(
			int(math.Round(sp.X-sp.W/2)), int(math.Round(sp.Y-sp.H/2)),
			int(math.Round(sp.X+sp.W/2)), int(math.Round(sp.Y+sp.H/2)),
		)
		if r.Empty() || !r.Overlaps(s.img.Bounds()) {
			continue
		}
		tex := sp.Label.Texture
		draw.BiLinear.Scale(s.img, r, tex, tex.Bounds(), draw.Over, nil)
	}
	return nil
}

// Image is the last rendered frame. It is nil after Dispose.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Dispose() {
	s.disposed = true
	s.img = nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
