// Package physics holds the body model and the pairwise collision rules used by
// the fusion simulation: vector math, the body lifecycle, bounce response and
// momentum-conserving fusion.
package physics

import "math"

// Vec2 is a 2D vector. Methods with value receivers never modify the operand;
// Translate is the only in-place operation.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Magnitude is an alias for Len.
func (v Vec2) Magnitude() float64 { return v.Len() }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged; callers that need a direction must check IsZero first.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	inv := 1 / l
	return Vec2{X: v.X * inv, Y: v.Y * inv}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Translate moves v by d in place.
func (v *Vec2) Translate(d Vec2) {
	v.X += d.X
	v.Y += d.Y
}

// Polar builds a vector of length r pointing at angle (radians).
func Polar(r, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: r * cos, Y: r * sin}
}
