// Package fusion runs circular bodies through a toroidal arena. Overlapping
// bodies either bounce or fuse, and an optional anchor acts as a gravity well
// that captures base bodies and spawns fused ones.
package fusion

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"mad-fusion/internal/core"
	"mad-fusion/internal/physics"
	prng "mad-fusion/pkg/core"
)

// ErrWorldFull reports a spawn beyond MaxBodies.
var ErrWorldFull = errors.New("world is at its body limit")

// Stats summarizes the most recent tick.
type Stats struct {
	Tick     uint64
	Bodies   int
	Fused    int
	Visible  int
	Bounces  int
	Merges   int
	Captures int
	// Frame is the time between the last two Step calls.
	Frame time.Duration
}

// World owns every body of one simulation.
type World struct {
	cfg   Config
	next  Config
	arena core.Arena
	view  core.Rect

	bodies []*physics.Body
	anchor *physics.Body

	resolver physics.Resolver
	rng      *prng.RNG
	seed     int64

	nextID uint64
	tick   uint64
	fused  int
	last   Stats
	lastAt time.Time

	clock core.Clock
	sched core.Scheduler
	state core.RunState
}

// New returns a free-variant world with the provided arena size.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	if cfg.ViewWidth > w {
		cfg.ViewWidth = w
	}
	if cfg.ViewHeight > h {
		cfg.ViewHeight = h
	}
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a world without bodies. The anchor
// variant already holds its anchor. Call Reset or Start to populate it.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	arena := core.Arena{W: float64(cfg.Width), H: float64(cfg.Height)}
	w := &World{
		cfg:   cfg,
		next:  cfg,
		arena: arena,
		view:  arena.CenteredView(float64(cfg.ViewWidth), float64(cfg.ViewHeight)),
		rng:   prng.NewRNG(cfg.Seed),
		seed:  cfg.Seed,
		clock: core.SystemClock{},
	}
	w.resolver.Gate = w.newGate()
	if cfg.Anchor {
		w.anchor = w.newAnchor()
		w.anchor.Visible = w.visible(w.anchor)
	}
	return w, nil
}

func (w *World) newGate() physics.MergeGate {
	switch w.cfg.Gate {
	case GateProbability:
		return physics.ProbabilityGate{Threshold: w.cfg.MergeThreshold, Rand: w.rng}
	case GateCapacity:
		return physics.CapacityGate{Max: w.cfg.MaxFused, MaxRadius: w.cfg.MaxRadius, Counter: w}
	default:
		return physics.NeverMerge{}
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string {
	if w.cfg.Anchor {
		return "gravity-well"
	}
	return "fusion"
}

// Size reports the viewport dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.ViewWidth, H: w.cfg.ViewHeight} }

// Config returns the configuration in effect.
func (w *World) Config() Config { return w.cfg }

// Arena returns the toroidal bounds.
func (w *World) Arena() core.Arena { return w.arena }

// Viewport is the arena rectangle shown to renderers.
func (w *World) Viewport() core.Rect { return w.view }

// Bodies exposes the live body slice in scan order. Callers must not modify it.
func (w *World) Bodies() []*physics.Body { return w.bodies }

// Anchor returns the anchor body, or nil in the free variant.
func (w *World) Anchor() *physics.Body { return w.anchor }

// Body looks a body up by id. The anchor is included.
func (w *World) Body(id uint64) (*physics.Body, bool) {
	if w.anchor != nil && w.anchor.ID == id {
		return w.anchor, true
	}
	for _, b := range w.bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Ticks returns the number of Step calls since the last Reset.
func (w *World) Ticks() uint64 { return w.tick }

// FusedCount reports how many fused bodies are alive.
func (w *World) FusedCount() int { return w.fused }

// Stats returns counters for the most recent tick.
func (w *World) Stats() Stats { return w.last }

// Reset discards every body and repopulates the world. A zero seed reuses the
// configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng.Seed(effective)
	if w.next != w.cfg {
		w.cfg = w.next
		w.resolver.Gate = w.newGate()
	}

	clear(w.bodies)
	w.bodies = w.bodies[:0]
	w.anchor = nil
	w.tick = 0
	w.fused = 0
	w.last = Stats{}
	w.lastAt = time.Time{}

	if w.cfg.Anchor {
		w.anchor = w.newAnchor()
	}
	n := w.cfg.Bodies
	if n == 0 {
		n = w.cfg.MaxBodies*2/3 + w.rng.IntN(w.cfg.MaxBodies/3)
	}
	if w.cfg.MaxBodies > 0 && n > w.cfg.MaxBodies {
		n = w.cfg.MaxBodies
	}
	for i := 0; i < n; i++ {
		if _, err := w.insert(w.baseParams()); err != nil {
			break
		}
	}
	w.refreshVisibility()
	w.last.Bodies = len(w.bodies)
}

// Step advances the world by one tick: integrate, detect and resolve, then
// clean up.
func (w *World) Step(now time.Time) {
	w.tick++
	w.last = Stats{Tick: w.tick}
	if !w.lastAt.IsZero() {
		w.last.Frame = now.Sub(w.lastAt)
	}
	w.lastAt = now

	w.integrate()
	w.detect()
	w.cleanup()

	w.last.Bodies = len(w.bodies)
	w.last.Fused = w.fused
}

func (w *World) integrate() {
	if w.anchor != nil {
		w.move(w.anchor)
	}
	for _, b := range w.bodies {
		if !b.Live() {
			continue
		}
		w.move(b)
		if w.captured(b) {
			b.MarkDestroy()
			w.last.Captures++
		}
	}
}

func (w *World) move(b *physics.Body) {
	b.Pos.Translate(b.Vel)
	b.Pos.X, b.Pos.Y = w.arena.Wrap(b.Pos.X, b.Pos.Y)
}

// detect runs one scan per body present when the phase starts. Bodies fused
// during the phase are candidates for later scans but do not scan themselves
// until the next tick.
func (w *World) detect() {
	if w.anchor != nil {
		if c, ok := w.resolver.Scan(w.anchor, nil, w.bodies); ok {
			w.apply(c)
		}
	}
	n := len(w.bodies)
	for i := 0; i < n; i++ {
		a := w.bodies[i]
		if !a.Live() {
			continue
		}
		if c, ok := w.resolver.Scan(a, w.anchor, w.bodies); ok {
			w.apply(c)
		}
	}
}

func (w *World) apply(c physics.Contact) {
	w.resolver.Resolve(c, w.tick)
	switch c.Outcome {
	case physics.OutcomeBounce:
		w.last.Bounces++
	case physics.OutcomeMerge:
		if _, err := w.insert(w.fusedParams(c.A, c.B)); err == nil {
			w.last.Merges++
		}
	}
}

func (w *World) fusedParams(a, b *physics.Body) physics.BodyParams {
	if w.cfg.Anchor {
		return w.wellFusedParams(a, b)
	}
	f := physics.Fuse(a, b)
	return physics.BodyParams{
		Pos:         f.Pos,
		Vel:         f.Vel,
		Radius:      f.Radius,
		MergeRadius: f.Radius * w.cfg.MergeRadiusFactor,
		Mass:        f.Mass,
		Elasticity:  f.Elasticity,
		Fused:       true,
	}
}

func (w *World) cleanup() {
	kept := w.bodies[:0]
	for _, b := range w.bodies {
		switch b.State {
		case physics.StateDestroy:
			if !w.cfg.Anchor {
				w.forget(b)
				continue
			}
			w.respawn(b)
		case physics.StateHit:
			if b.HitTick < w.tick {
				b.State = physics.StateNormal
			}
		}
		kept = append(kept, b)
	}
	clear(w.bodies[len(kept):])
	w.bodies = kept

	if a := w.anchor; a != nil && a.State == physics.StateHit && a.HitTick < w.tick {
		a.State = physics.StateNormal
	}
	w.refreshVisibility()
}

func (w *World) refreshVisibility() {
	visible := 0
	for _, b := range w.bodies {
		b.Visible = w.visible(b)
		if b.Visible {
			visible++
		}
	}
	if w.anchor != nil {
		w.anchor.Visible = w.visible(w.anchor)
	}
	w.last.Visible = visible
}

func (w *World) visible(b *physics.Body) bool {
	x, y, bw, bh := b.Bounds()
	return w.view.Intersects(core.Rect{X: x, Y: y, W: bw, H: bh})
}

// SpawnBody inserts a body built from p and returns its id. The position is
// wrapped into the arena.
func (w *World) SpawnBody(p physics.BodyParams) (uint64, error) {
	if p.Anchor {
		return 0, fmt.Errorf("%w: anchors are created by the world", physics.ErrInvalidBody)
	}
	if w.cfg.MaxBodies > 0 && len(w.bodies) >= w.cfg.MaxBodies {
		return 0, ErrWorldFull
	}
	p.Pos.X, p.Pos.Y = w.arena.Wrap(p.Pos.X, p.Pos.Y)
	b, err := w.insert(p)
	if err != nil {
		return 0, err
	}
	b.Visible = w.visible(b)
	return b.ID, nil
}

// RemoveBody deletes the body with the given id, keeping the order of the
// rest. The anchor cannot be removed.
func (w *World) RemoveBody(id uint64) bool {
	i := slices.IndexFunc(w.bodies, func(b *physics.Body) bool { return b.ID == id })
	if i < 0 {
		return false
	}
	w.forget(w.bodies[i])
	w.bodies = slices.Delete(w.bodies, i, i+1)
	return true
}

// Snapshot appends a read-only view of every live body to dst, anchor first.
func (w *World) Snapshot(dst []core.BodyView) []core.BodyView {
	if w.anchor != nil {
		dst = append(dst, view(w.anchor))
	}
	for _, b := range w.bodies {
		if b.Live() {
			dst = append(dst, view(b))
		}
	}
	return dst
}

func view(b *physics.Body) core.BodyView {
	return core.BodyView{
		ID:          b.ID,
		X:           b.Pos.X,
		Y:           b.Pos.Y,
		VX:          b.Vel.X,
		VY:          b.Vel.Y,
		Radius:      b.Radius,
		MergeRadius: b.MergeRadius,
		Hit:         b.State == physics.StateHit,
		Anchor:      b.Anchor,
		Fused:       b.Fused,
		Visible:     b.Visible,
	}
}

func (w *World) insert(p physics.BodyParams) (*physics.Body, error) {
	b, err := physics.NewBody(w.nextID, p)
	if err != nil {
		return nil, err
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	if b.Fused {
		w.fused++
	}
	return b, nil
}

func (w *World) forget(b *physics.Body) {
	if b.Fused {
		w.fused--
	}
}

// baseParams places a base body on the spawn ring around the anchor, or
// anywhere in the arena without one.
func (w *World) baseParams() physics.BodyParams {
	var pos physics.Vec2
	if w.anchor != nil {
		pos = w.ringPoint(2)
	} else {
		pos = physics.V(w.rng.Between(0, w.arena.W), w.rng.Between(0, w.arena.H))
	}
	speed := w.cfg.MinSpeed + w.cfg.MaxSpeed*w.rng.Float64()
	return physics.BodyParams{
		Pos:         pos,
		Vel:         physics.Polar(speed, w.rng.Angle()),
		Radius:      w.cfg.BaseRadius,
		MergeRadius: w.cfg.BaseRadius * w.cfg.MergeRadiusFactor,
		Mass:        w.cfg.BaseMass,
		Elasticity:  w.cfg.BaseElasticity,
		Base:        true,
	}
}

func init() {
	core.Register("fusion", factory(DefaultConfig))
	core.Register("gravity-well", factory(GravityWellConfig))
}

func factory(base func() Config) core.Factory {
	return func(cfg map[string]string) (core.Sim, error) {
		w, err := build(base(), cfg)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}

// build applies an optional TOML file (key "config") and then the remaining
// map entries over base.
func build(base Config, cfg map[string]string) (*World, error) {
	if path := cfg["config"]; path != "" {
		loaded, err := LoadConfig(path, base)
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	return NewWithConfig(ApplyMap(base, cfg))
}
