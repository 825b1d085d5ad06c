package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBody reports a body constructed with non-positive or non-finite
// physical parameters.
var ErrInvalidBody = errors.New("invalid body parameters")

// State enumerates the per-tick lifecycle of a body.
type State uint8

const (
	// StateNormal is the resting state.
	StateNormal State = iota
	// StateHit marks a body that bounced during the current or previous tick.
	StateHit
	// StateDestroy marks a body consumed by a merge or captured by an anchor.
	StateDestroy
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateHit:
		return "hit"
	case StateDestroy:
		return "destroy"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// BodyParams describes a body before it is inserted into a world. Zero Mass
// defaults to Radius and zero MergeRadius defaults to Radius.
type BodyParams struct {
	Pos         Vec2
	Vel         Vec2
	Radius      float64
	MergeRadius float64
	Mass        float64
	Elasticity  float64

	Anchor bool
	Base   bool
	Fused  bool
}

// Body is a single circular simulated entity.
type Body struct {
	ID  uint64
	Pos Vec2
	Vel Vec2

	Radius      float64
	MergeRadius float64
	Mass        float64
	Elasticity  float64

	State State
	// HitTick is the tick in which State last became StateHit.
	HitTick uint64

	Anchor  bool
	Base    bool
	Fused   bool
	Visible bool
}

// NewBody validates p and builds a body with the given id.
func NewBody(id uint64, p BodyParams) (*Body, error) {
	if !positive(p.Radius) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidBody, p.Radius)
	}
	mass := p.Mass
	if mass == 0 {
		mass = p.Radius
	}
	if !positive(mass) {
		return nil, fmt.Errorf("%w: mass %v", ErrInvalidBody, mass)
	}
	if !positive(p.Elasticity) {
		return nil, fmt.Errorf("%w: elasticity %v", ErrInvalidBody, p.Elasticity)
	}
	mr := p.MergeRadius
	if mr == 0 {
		mr = p.Radius
	}
	if !positive(mr) || mr > p.Radius {
		return nil, fmt.Errorf("%w: merge radius %v (radius %v)", ErrInvalidBody, mr, p.Radius)
	}
	if !finite(p.Pos) || !finite(p.Vel) {
		return nil, fmt.Errorf("%w: non-finite motion", ErrInvalidBody)
	}
	return &Body{
		ID:          id,
		Pos:         p.Pos,
		Vel:         p.Vel,
		Radius:      p.Radius,
		MergeRadius: mr,
		Mass:        mass,
		Elasticity:  p.Elasticity,
		Anchor:      p.Anchor,
		Base:        p.Base,
		Fused:       p.Fused,
		Visible:     true,
	}, nil
}

// Live reports whether the body still takes part in collision scans.
func (b *Body) Live() bool { return b.State != StateDestroy }

// MarkHit flags a bounce. Destroy always wins over Hit.
func (b *Body) MarkHit(tick uint64) {
	if b.State == StateDestroy {
		return
	}
	b.State = StateHit
	b.HitTick = tick
}

// MarkDestroy flags the body for removal or respawn during cleanup.
func (b *Body) MarkDestroy() { b.State = StateDestroy }

// Bounds returns the axis-aligned bounding box as x, y, width, height.
func (b *Body) Bounds() (x, y, w, h float64) {
	return b.Pos.X - b.Radius, b.Pos.Y - b.Radius, 2 * b.Radius, 2 * b.Radius
}

// Reshape replaces the body's geometry and motion, keeping its identity. It is
// used for respawning captured bodies.
func (b *Body) Reshape(p BodyParams) error {
	nb, err := NewBody(b.ID, p)
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func finite(v Vec2) bool {
	return !math.IsInf(v.X, 0) && !math.IsNaN(v.X) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.Y)
}
