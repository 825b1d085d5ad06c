package physics

import (
	"fmt"
	"math"
)

// Outcome classifies a pairwise overlap.
type Outcome uint8

const (
	// OutcomeNone means the bodies do not overlap.
	OutcomeNone Outcome = iota
	// OutcomePass means the bodies overlap but ignore each other (a base body
	// drifting through an anchor).
	OutcomePass
	// OutcomeBounce means the overlap resolves as an impulse exchange.
	OutcomeBounce
	// OutcomeMerge means the bodies fuse into a new body.
	OutcomeMerge
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePass:
		return "pass"
	case OutcomeBounce:
		return "bounce"
	case OutcomeMerge:
		return "merge"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// Contact describes one classified pair. Sep points from B to A and is not
// normalized.
type Contact struct {
	A, B    *Body
	Sep     Vec2
	Dist    float64
	Outcome Outcome
}

// FallbackNormal is used when two bodies share the exact same center.
var FallbackNormal = Vec2{X: 1, Y: 0}

// Resolver classifies and resolves overlaps between bodies.
type Resolver struct {
	Gate MergeGate
}

// Classify tests a against b. Destroyed bodies and self-pairs never overlap.
func (r *Resolver) Classify(a, b *Body) Contact {
	c := Contact{A: a, B: b}
	if a == b || !a.Live() || !b.Live() {
		return c
	}
	c.Sep = a.Pos.Sub(b.Pos)
	c.Dist = c.Sep.Len()
	if c.Dist >= a.Radius+b.Radius {
		return c
	}

	if a.Anchor || b.Anchor {
		other := b
		if b.Anchor {
			other = a
		}
		if other.Base {
			c.Outcome = OutcomePass
		} else {
			c.Outcome = OutcomeBounce
		}
		return c
	}

	if c.Dist < a.MergeRadius+b.MergeRadius && r.Gate != nil && r.Gate.AllowMerge(a, b) {
		c.Outcome = OutcomeMerge
		return c
	}
	c.Outcome = OutcomeBounce
	return c
}

// Scan looks for the first interaction of a. The anchor, when present, is
// checked before the candidates, which are visited in order. Pass-through
// overlaps do not end the scan. The second return value is false when a
// interacts with nothing.
func (r *Resolver) Scan(a, anchor *Body, candidates []*Body) (Contact, bool) {
	if anchor != nil && anchor != a {
		if c := r.Classify(a, anchor); interacts(c.Outcome) {
			return c, true
		}
	}
	for _, b := range candidates {
		if c := r.Classify(a, b); interacts(c.Outcome) {
			return c, true
		}
	}
	return Contact{}, false
}

// Resolve applies a bounce or marks both parents of a merge. The caller is
// responsible for spawning the fused body.
func (r *Resolver) Resolve(c Contact, tick uint64) {
	switch c.Outcome {
	case OutcomeBounce:
		c.A.MarkHit(tick)
		c.B.MarkHit(tick)
		Bounce(c.A, c.B, c.Sep, c.Dist)
	case OutcomeMerge:
		c.A.MarkDestroy()
		c.B.MarkDestroy()
	}
}

func interacts(o Outcome) bool {
	return o == OutcomeBounce || o == OutcomeMerge
}

// Bounce separates two overlapping bodies along their center line and
// exchanges momentum along that normal. The tangential velocity components are
// left untouched.
func Bounce(a, b *Body, sep Vec2, dist float64) {
	n := FallbackNormal
	if dist > 0 && !sep.IsZero() {
		n = sep.Scale(1 / dist)
	}
	sumMass := a.Mass + b.Mass
	overlap := a.Radius + b.Radius - dist

	// Heavier bodies are displaced less.
	a.Pos.Translate(n.Scale(overlap * b.Mass / sumMass))
	b.Pos.Translate(n.Scale(-overlap * a.Mass / sumMass))

	t := Vec2{X: n.Y, Y: -n.X}
	v1, v2 := a.Vel.Dot(n), b.Vel.Dot(n)
	t1, t2 := a.Vel.Dot(t), b.Vel.Dot(t)
	cr := math.Min(a.Elasticity, b.Elasticity)

	n1 := (cr*b.Mass*(v2-v1) + a.Mass*v1 + b.Mass*v2) / sumMass
	n2 := (cr*a.Mass*(v1-v2) + b.Mass*v2 + a.Mass*v1) / sumMass

	a.Vel = t.Scale(t1).Add(n.Scale(n1))
	b.Vel = t.Scale(t2).Add(n.Scale(n2))
}

// Fusion is the momentum-conserving product of two merging bodies.
type Fusion struct {
	Pos        Vec2
	Vel        Vec2
	Radius     float64
	Mass       float64
	Elasticity float64
}

// Fuse combines a and b: masses and radii add, velocity is the mass-weighted
// average, and the result sits on the heavier parent (a on ties).
func Fuse(a, b *Body) Fusion {
	mass := a.Mass + b.Mass
	pos := a.Pos
	if b.Mass > a.Mass {
		pos = b.Pos
	}
	return Fusion{
		Pos:        pos,
		Vel:        a.Vel.Scale(a.Mass).Add(b.Vel.Scale(b.Mass)).Scale(1 / mass),
		Radius:     a.Radius + b.Radius,
		Mass:       mass,
		Elasticity: math.Min(a.Elasticity, b.Elasticity),
	}
}
