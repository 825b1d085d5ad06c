package core

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Intersects reports whether r and o overlap. Touching edges count as overlap.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X > r.X+r.W || o.X+o.W < r.X || o.Y > r.Y+r.H || o.Y+o.H < r.Y)
}

// Contains reports whether the point lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Arena is a toroidal rectangle anchored at the origin.
type Arena struct {
	W, H float64
}

// Wrap folds a coordinate pair back into [0,W)x[0,H). Each axis is corrected at
// most once, so a body moving more than one arena length per tick is not
// fully folded.
func (a Arena) Wrap(x, y float64) (float64, float64) {
	return wrapOnce(x, a.W), wrapOnce(y, a.H)
}

// CenteredView returns a w by h rectangle centered in the arena.
func (a Arena) CenteredView(w, h float64) Rect {
	return Rect{X: (a.W - w) / 2, Y: (a.H - h) / 2, W: w, H: h}
}

func wrapOnce(v, size float64) float64 {
	if v >= size {
		return v - size
	}
	if v < 0 {
		return v + size
	}
	return v
}
