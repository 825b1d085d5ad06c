//go:build ebiten

package render

import (
	"mad-fusion/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BodyPainter draws a body snapshot as filled circles.
type BodyPainter struct {
	Palette  Palette
	MaxSpeed float64
}

// NewBodyPainter returns a painter using the default palette.
func NewBodyPainter(maxSpeed float64) *BodyPainter {
	return &BodyPainter{Palette: DefaultPalette(), MaxSpeed: maxSpeed}
}

// Draw clears dst and paints every visible body through proj. The anchor is
// drawn first so other bodies stay on top of it.
func (p *BodyPainter) Draw(dst *ebiten.Image, bodies []core.BodyView, proj Projection) {
	dst.Fill(p.Palette.Background)
	for _, b := range bodies {
		if !b.Visible {
			continue
		}
		x, y := proj.ToScreen(b.X, b.Y)
		r := proj.Length(b.Radius)
		if r < 1 {
			r = 1
		}
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(r), p.Palette.Fill(b, p.MaxSpeed), true)
		if col, ok := p.Palette.Outline(b); ok {
			width := float32(1)
			if b.Anchor {
				width = 2
			}
			vector.StrokeCircle(dst, float32(x), float32(y), float32(r), width, col, true)
		}
	}
}
