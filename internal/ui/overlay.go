//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"mad-fusion/internal/core"
	"mad-fusion/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws optional debugging visuals on top of the bodies.
//
//	1  merge radii
//	2  velocity vectors
//	3  anchor capture zone
type Overlay struct {
	showMerge    bool
	showVelocity bool
	showCapture  bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay { return &Overlay{} }

// Update toggles layers from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showMerge = !o.showMerge
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showVelocity = !o.showVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showCapture = !o.showCapture
	}
}

// Draw renders the enabled layers for the visible bodies.
func (o *Overlay) Draw(screen *ebiten.Image, bodies []core.BodyView, proj render.Projection) {
	if !o.showMerge && !o.showVelocity && !o.showCapture {
		return
	}
	for _, b := range bodies {
		if !b.Visible {
			continue
		}
		x, y := proj.ToScreen(b.X, b.Y)
		if b.Anchor {
			if o.showCapture {
				r := proj.Length(b.MergeRadius)
				vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 1, color.RGBA{R: 255, G: 120, B: 40, A: 180}, true)
			}
			continue
		}
		if o.showMerge && b.MergeRadius > 0 {
			r := proj.Length(b.MergeRadius)
			vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 1, color.RGBA{R: 64, G: 164, B: 223, A: 140}, true)
		}
		if o.showVelocity {
			o.drawArrow(screen, x, y, proj.Length(b.VX), proj.Length(b.VY))
		}
	}
}

// drawArrow draws a velocity arrow scaled so one tick of motion spans four
// screen pixels.
func (o *Overlay) drawArrow(screen *ebiten.Image, x, y, vx, vy float64) {
	const (
		lengthScale = 4
		headAngle   = math.Pi / 6
	)
	speed := math.Hypot(vx, vy)
	if speed < 1e-6 {
		return
	}
	length := speed * lengthScale
	nx, ny := vx/speed, vy/speed
	tipX, tipY := x+nx*length, y+ny*length
	headLength := math.Min(length*0.3, 6)
	col := speedColor(speed / 10)

	vector.StrokeLine(screen, float32(x), float32(y), float32(tipX), float32(tipY), 1, col, true)
	angle := math.Atan2(ny, nx)
	for _, side := range []float64{headAngle, -headAngle} {
		hx := tipX - math.Cos(angle+side)*headLength
		hy := tipY - math.Sin(angle+side)*headLength
		vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(hx), float32(hy), 1, col, true)
	}
}

func speedColor(t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	return color.RGBA{
		R: uint8(math.Round(80 + 170*t)),
		G: uint8(math.Round(230 - 120*t)),
		B: uint8(math.Round(140 - 100*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}
