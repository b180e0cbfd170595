package tui

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

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// drawLineMicro draws a line on the microgrid using Bresenham. Lines are
// clipped to a margin around the buffer first.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	if !b.clip(&x0, &y0, &x1, &y1) {
		return
	}
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

// clip handles the axis-aligned lines the outline needs: both ends share an
// x or a y. Other lines pass through unchanged.
func (b *brailleBuf) clip(x0, y0, x1, y1 *int) bool {
	wMic, hMic := b.w*2, b.h*4
	switch {
	case *y0 == *y1:
		if *y0 < 0 || *y0 >= hMic {
			return false
		}
		*x0, *x1 = clampInt(*x0, -1, wMic), clampInt(*x1, -1, wMic)
	case *x0 == *x1:
		if *x0 < 0 || *x0 >= wMic {
			return false
		}
		*y0, *y1 = clampInt(*y0, -1, hMic), clampInt(*y1, -1, hMic)
	}
	return true
}

// rect outlines the box with corners (x0,y0) and (x1,y1).
func (b *brailleBuf) rect(x0, y0, x1, y1 int) {
	b.drawLineMicro(x0, y0, x1, y0)
	b.drawLineMicro(x1, y0, x1, y1)
	b.drawLineMicro(x1, y1, x0, y1)
	b.drawLineMicro(x0, y1, x0, y0)
}

// at returns the braille rune of a cell, or false when it is blank.
func (b *brailleBuf) at(cx, cy int) (rune, bool) {
	mask := b.m[cy][cx]
	if mask == 0 {
		return ' ', false
	}
	return rune(0x2800 + int(mask)), true
}
