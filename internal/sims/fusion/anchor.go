package fusion

import "mad-fusion/internal/physics"

func (w *World) newAnchor() *physics.Body {
	cx, cy := w.view.Center()
	b, err := physics.NewBody(w.nextID, physics.BodyParams{
		Pos:         physics.V(cx, cy),
		Radius:      w.cfg.AnchorRadius,
		MergeRadius: w.cfg.AnchorRadius * w.cfg.MergeRadiusFactor,
		Mass:        w.cfg.AnchorMass,
		Elasticity:  w.cfg.AnchorElasticity,
		Anchor:      true,
	})
	if err != nil {
		// Validate has already checked the anchor parameters.
		panic(err)
	}
	w.nextID++
	return b
}

// captured reports whether a base body has drifted into the anchor's core.
func (w *World) captured(b *physics.Body) bool {
	return w.anchor != nil && b.Base && b.Pos.Dist(w.anchor.Pos) < w.anchor.MergeRadius
}

// ringPoint picks a point at distance anchor.Radius*(inner+U) from the anchor
// center, wrapped into the arena.
func (w *World) ringPoint(inner float64) physics.Vec2 {
	d := w.anchor.Radius * (inner + w.rng.Float64())
	p := w.anchor.Pos.Add(physics.Polar(d, w.rng.Angle()))
	p.X, p.Y = w.arena.Wrap(p.X, p.Y)
	return p
}

// respawn turns a destroyed body back into a base body on the spawn ring.
func (w *World) respawn(b *physics.Body) {
	w.forget(b)
	if err := b.Reshape(w.baseParams()); err != nil {
		panic(err)
	}
}

// wellFusedParams builds the body produced by a merge near the anchor: a fixed
// radius, the summed mass and a small random drift, placed just outside the
// anchor.
func (w *World) wellFusedParams(a, b *physics.Body) physics.BodyParams {
	return physics.BodyParams{
		Pos:         w.ringPoint(1.1),
		Vel:         physics.V(w.rng.Float64(), w.rng.Float64()),
		Radius:      w.cfg.FusedRadius,
		MergeRadius: w.cfg.FusedRadius * w.cfg.MergeRadiusFactor,
		Mass:        a.Mass + b.Mass,
		Elasticity:  1,
		Fused:       true,
	}
}
