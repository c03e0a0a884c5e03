package tui

import (
	"errors"
	"math"
	"strings"
	"sync"

	"wordsphere/internal/scene"
)

// Braille packs 2x4 micro-pixels into each cell; the scene viewport is
// measured in micro-pixels so that its aspect ratio roughly matches the
// terminal's.
const (
	microX = 2
	microY = 4
)

var errCanvasDisposed = errors.New("tui: canvas disposed")

type cell struct {
	r     rune
	style cellStyle
}

// canvas is a scene.Surface drawing into terminal cells.
type canvas struct {
	mu       sync.Mutex
	w, h     int // in cells
	br       *brailleBuf
	grid     [][]cell
	out      string
	disposed bool
}

var _ scene.Surface = (*canvas)(nil)

func newCanvas(vp scene.Viewport) *canvas {
	c := &canvas{}
	c.alloc(vp.Width/microX, vp.Height/microY)
	return c
}

func (c *canvas) alloc(w, h int) {
	c.w, c.h = max(1, w), max(1, h)
	c.br = newBrailleBuf(c.w, c.h)
	c.grid = make([][]cell, c.h)
	for y := range c.grid {
		c.grid[y] = make([]cell, c.w)
	}
	c.out = ""
}

// Resize takes the viewport in micro-pixels.
func (c *canvas) Resize(w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.alloc(w/microX, h/microY)
}

func (c *canvas) Render(f *scene.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return errCanvasDisposed
	}
	c.br.reset()
	for i := 1; i < len(f.Outline); i++ {
		a, b := f.Outline[i-1], f.Outline[i]
		c.br.drawLineMicro(int(a.X), int(a.Y), int(b.X), int(b.Y))
	}
	for _, g := range f.Guide {
		// the lit front of the globe only; the rest reads as noise in a terminal
		if g.Behind || g.Shade < 0.95 {
			continue
		}
		c.br.setPixel(int(g.X), int(g.Y))
	}
	for y := range c.grid {
		for x := range c.grid[y] {
			if r := c.br.glyph(x, y); r != 0 {
				c.grid[y][x] = cell{r: r, style: styleGuide}
			} else {
				c.grid[y][x] = cell{r: ' '}
			}
		}
	}
	for _, sp := range f.Sprites {
		c.placeLabel(sp)
	}
	c.out = c.compose()
	return nil
}

// placeLabel writes the sprite's word centred on its cell. Later sprites
// are nearer and overwrite earlier ones.
func (c *canvas) placeLabel(sp scene.Sprite) {
	if sp.Label == nil {
		return
	}
	text := []rune(sp.Label.Item.Text)
	cy := int(math.Floor(sp.Y / microY))
	if cy < 0 || cy >= c.h {
		return
	}
	x0 := int(math.Floor(sp.X/microX)) - len(text)/2
	st := labelStyle(sp)
	for i, r := range text {
		x := x0 + i
		if x < 0 || x >= c.w {
			continue
		}
		c.grid[cy][x] = cell{r: r, style: st}
	}
}

func labelStyle(sp scene.Sprite) cellStyle {
	switch {
	case sp.Label.Featured:
		return styleFeatured
	case sp.Behind:
		return styleBehind
	case sp.Label.Scale >= 0.95:
		return styleStrong
	}
	return styleLabel
}

// compose renders each row as runs of equally styled cells.
func (c *canvas) compose() string {
	var sb strings.Builder
	var run []rune
	for y, row := range c.grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		cur := styleBlank
		run = run[:0]
		flush := func() {
			if len(run) == 0 {
				return
			}
			if cur == styleBlank {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(cellStyles[cur].Render(string(run)))
			}
			run = run[:0]
		}
		for _, cl := range row {
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run = append(run, cl.r)
		}
		flush()
	}
	return sb.String()
}

// View is the last rendered frame, or "" after Dispose.
func (c *canvas) View() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out
}

// cells reports the grid size.
func (c *canvas) cells() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w, c.h
}

func (c *canvas) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.grid = nil
	c.br = nil
	c.out = ""
}

// canvasRef tracks the canvas of the live scene across rebuilds.
type canvasRef struct {
	mu sync.Mutex
	c  *canvas
}

func (r *canvasRef) factory(vp scene.Viewport) (scene.Surface, error) {
	c := newCanvas(vp)
	r.mu.Lock()
	r.c = c
	r.mu.Unlock()
	return c, nil
}

func (r *canvasRef) view() string {
	r.mu.Lock()
	c := r.c
	r.mu.Unlock()
	if c == nil {
		return ""
	}
	return c.View()
}
