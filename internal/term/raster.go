// Package term draws a fusion scene on a character terminal.
package term

import (
	"math"

	"mad-fusion/internal/core"
)

// Glyph classes in increasing draw priority.
type Glyph uint8

const (
	GlyphEmpty Glyph = iota
	GlyphBody
	GlyphFused
	GlyphHit
	GlyphAnchor
)

// Rune returns the character printed for g.
func (g Glyph) Rune() rune {
	switch g {
	case GlyphBody:
		return '.'
	case GlyphFused:
		return 'O'
	case GlyphHit:
		return '*'
	case GlyphAnchor:
		return '@'
	default:
		return ' '
	}
}

func glyphFor(b core.BodyView) Glyph {
	switch {
	case b.Anchor:
		return GlyphAnchor
	case b.Hit:
		return GlyphHit
	case b.Fused:
		return GlyphFused
	default:
		return GlyphBody
	}
}

// Rasterize maps the visible bodies onto a cols x rows grid covering view.
// dst is reused when large enough. A cell shows the highest priority body
// whose center falls into it; the anchor also fills the cells under its disc.
func Rasterize(dst []Glyph, cols, rows int, view core.Rect, bodies []core.BodyView) []Glyph {
	if cols <= 0 || rows <= 0 || view.W <= 0 || view.H <= 0 {
		return dst[:0]
	}
	n := cols * rows
	if cap(dst) < n {
		dst = make([]Glyph, n)
	}
	dst = dst[:n]
	clear(dst)

	sx := float64(cols) / view.W
	sy := float64(rows) / view.H
	for _, b := range bodies {
		if !b.Visible {
			continue
		}
		g := glyphFor(b)
		if b.Anchor {
			fillDisc(dst, cols, rows, view, sx, sy, b)
			continue
		}
		if !view.Contains(b.X, b.Y) {
			continue
		}
		cx := cell(b.X, view.X, sx)
		cy := cell(b.Y, view.Y, sy)
		if cx >= cols || cy >= rows {
			continue
		}
		if i := cy*cols + cx; dst[i] < g {
			dst[i] = g
		}
	}
	return dst
}

func fillDisc(dst []Glyph, cols, rows int, view core.Rect, sx, sy float64, b core.BodyView) {
	x0 := max(cell(b.X-b.Radius, view.X, sx), 0)
	x1 := min(cell(b.X+b.Radius, view.X, sx), cols-1)
	y0 := max(cell(b.Y-b.Radius, view.Y, sy), 0)
	y1 := min(cell(b.Y+b.Radius, view.Y, sy), rows-1)
	r2 := b.Radius * b.Radius
	for y := y0; y <= y1; y++ {
		wy := view.Y + (float64(y)+0.5)/sy - b.Y
		for x := x0; x <= x1; x++ {
			wx := view.X + (float64(x)+0.5)/sx - b.X
			if wx*wx+wy*wy <= r2 {
				dst[y*cols+x] = GlyphAnchor
			}
		}
	}
	// Keep a marker for anchors smaller than one cell.
	cx := cell(b.X, view.X, sx)
	cy := cell(b.Y, view.Y, sy)
	if cx >= 0 && cy >= 0 && cx < cols && cy < rows {
		dst[cy*cols+cx] = GlyphAnchor
	}
}

// cell returns the grid index of coordinate v, rounding toward negative
// infinity so points just before origin land outside the grid.
func cell(v, origin, scale float64) int {
	return int(math.Floor((v - origin) * scale))
}
