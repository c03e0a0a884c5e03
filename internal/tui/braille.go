package tui

// brailleBuf is a 2x4 micro-pixel grid per terminal cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

func (b *brailleBuf) reset() {
	for y := range b.m {
		clear(b.m[y])
	}
}

// dot bits for the left and right micro columns, top to bottom
var (
	leftBits  = [4]uint8{0x01, 0x02, 0x04, 0x40}
	rightBits = [4]uint8{0x08, 0x10, 0x20, 0x80}
)

// setPixel sets a micro-pixel at micro coords
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	if rx == 0 {
		b.m[cy][cx] |= leftBits[ry]
	} else {
		b.m[cy][cx] |= rightBits[ry]
	}
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// glyph is the braille rune for cell (x, y), or 0 when empty.
func (b *brailleBuf) glyph(x, y int) rune {
	mask := b.m[y][x]
	if mask == 0 {
		return 0
	}
	return rune(0x2800 + int(mask))
}
