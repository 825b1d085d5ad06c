package render

import (
	"image/color"
	"math"

	"mad-fusion/internal/core"
)

// Palette holds the fill colors used for each kind of body.
type Palette struct {
	Background color.RGBA
	Base       color.RGBA
	Fused      color.RGBA
	Anchor     color.RGBA
	Hit        color.RGBA
	Velocity   color.RGBA
}

// DefaultPalette matches the dark theme of the HUD.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 8, G: 8, B: 14, A: 255},
		Base:       color.RGBA{R: 150, G: 200, B: 240, A: 255},
		Fused:      color.RGBA{R: 255, G: 190, B: 70, A: 255},
		Anchor:     color.RGBA{R: 70, G: 40, B: 110, A: 255},
		Hit:        color.RGBA{R: 240, G: 60, B: 60, A: 255},
		Velocity:   color.RGBA{R: 120, G: 230, B: 140, A: 200},
	}
}

// Fill returns the body color. Base bodies brighten with speed so fast movers
// stand out; maxSpeed <= 0 disables the tint.
func (p Palette) Fill(v core.BodyView, maxSpeed float64) color.RGBA {
	switch {
	case v.Anchor:
		return p.Anchor
	case v.Fused:
		return p.Fused
	}
	if maxSpeed <= 0 {
		return p.Base
	}
	t := math.Hypot(v.VX, v.VY) / maxSpeed
	return lerpRGBA(dim(p.Base, 0.55), p.Base, t)
}

// Outline returns the stroke color and whether an outline should be drawn.
// Bodies that bounced this tick are outlined in the hit color.
func (p Palette) Outline(v core.BodyView) (color.RGBA, bool) {
	if v.Hit {
		return p.Hit, true
	}
	if v.Anchor {
		return lerpRGBA(p.Anchor, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.3), true
	}
	return color.RGBA{}, false
}

// Projection maps arena coordinates inside a viewport onto screen pixels.
type Projection struct {
	View  core.Rect
	Scale float64
}

// ToScreen converts an arena point to screen space.
func (p Projection) ToScreen(x, y float64) (float64, float64) {
	s := p.scale()
	return (x - p.View.X) * s, (y - p.View.Y) * s
}

// Length scales an arena distance to screen space.
func (p Projection) Length(d float64) float64 { return d * p.scale() }

// ScreenSize returns the pixel dimensions of the projected viewport.
func (p Projection) ScreenSize() (int, int) {
	s := p.scale()
	return int(math.Ceil(p.View.W * s)), int(math.Ceil(p.View.H * s))
}

func (p Projection) scale() float64 {
	if p.Scale <= 0 {
		return 1
	}
	return p.Scale
}

func dim(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: scaleComponent(c.R, factor),
		G: scaleComponent(c.G, factor),
		B: scaleComponent(c.B, factor),
		A: c.A,
	}
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
